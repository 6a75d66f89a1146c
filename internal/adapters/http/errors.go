package web

import (
	"errors"
	"net/http"
	"time"

	"beautrip/internal/application/orchestrators"
	domainAccount "beautrip/internal/domain/account"
	domainFavorite "beautrip/internal/domain/favorite"
	domainInquiry "beautrip/internal/domain/inquiry"
	domainReview "beautrip/internal/domain/review"
	domainSchedule "beautrip/internal/domain/schedule"
	domainTravel "beautrip/internal/domain/travel"
	"beautrip/internal/logging"
)

// userErrors are validation failures shown to the visitor, checked in order.
// Anything else is logged and answered with a generic message.
var userErrors = []struct {
	err error
	msg string
}{
	{domainReview.ErrIncomplete, domainReview.ErrIncomplete.Error()},
	{domainReview.ErrInvalidRating, "별점을 1점에서 5점 사이로 선택해주세요."},
	{domainReview.ErrContentTooLong, "후기는 5000자 이하로 작성해주세요."},
	{domainReview.ErrTooManyImages, "사진은 최대 4장까지 첨부할 수 있습니다."},
	{domainReview.ErrInvalidGender, "성별을 다시 선택해주세요."},
	{domainReview.ErrInvalidAgeGroup, "연령대를 다시 선택해주세요."},
	{domainReview.ErrInvalidDate, invalidDateMessage},
	{domainReview.ErrTranslationScore, "통역 서비스를 이용한 경우에만 통역 만족도를 입력할 수 있습니다."},
	{domainTravel.ErrMissingStart, "여행 시작일을 선택해주세요."},
	{domainTravel.ErrMissingEnd, "여행 종료일을 선택해주세요."},
	{domainTravel.ErrEndBeforeStart, "종료일은 시작일보다 빠를 수 없습니다."},
	{domainSchedule.ErrEmptyDate, "날짜를 선택해주세요."},
	{domainSchedule.ErrPastDate, "지난 날짜는 선택할 수 없습니다."},
	{domainSchedule.ErrNoteTooLong, "메모는 500자 이하로 입력해주세요."},
	{domainInquiry.ErrInvalidChannel, "상담 방법을 선택해주세요."},
	{domainInquiry.ErrEmptyMessage, "문의 내용을 입력해주세요."},
	{domainInquiry.ErrMessageTooLong, "문의 내용은 1000자 이하로 입력해주세요."},
	{domainInquiry.ErrEmptyContact, "회신 받을 연락처를 입력해주세요."},
	{domainInquiry.ErrHospitalNoEmail, "이 병원은 온라인 상담을 받지 않습니다. 전화로 문의해주세요."},
	{domainFavorite.ErrInvalidKind, "잘못된 요청입니다."},
	{orchestrators.ErrTargetNotFound, "대상을 찾을 수 없습니다."},
	{orchestrators.ErrLoginIDExists, orchestrators.ErrLoginIDExists.Error()},
	{orchestrators.ErrInvalidCredentials, orchestrators.ErrInvalidCredentials.Error()},
	{orchestrators.ErrAccountLocked, orchestrators.ErrAccountLocked.Error()},
	{domainAccount.ErrLoginIDTooShort, domainAccount.ErrLoginIDTooShort.Error()},
	{domainAccount.ErrLoginIDTooLong, "아이디는 64자 이하여야 합니다."},
	{domainAccount.ErrLoginIDReserved, "'sb_'로 시작하는 아이디는 사용할 수 없습니다."},
	{domainAccount.ErrLoginIDInvalid, "아이디는 영문, 숫자, '.', '_', '-'만 사용할 수 있습니다."},
	{domainAccount.ErrInvalidEmail, "이메일 형식이 올바르지 않습니다."},
	{domainAccount.ErrEmptyPassword, "비밀번호를 입력해주세요."},
	{domainAccount.ErrPasswordTooShort, domainAccount.ErrPasswordTooShort.Error()},
	{domainAccount.ErrPasswordMismatch, domainAccount.ErrPasswordMismatch.Error()},
}

const invalidDateMessage = "날짜 형식이 올바르지 않습니다."

// userMessage maps a command error to visitor-facing text.
// The bool is false for internal failures.
func userMessage(err error) (string, bool) {
	for _, ue := range userErrors {
		if errors.Is(err, ue.err) {
			return ue.msg, true
		}
	}
	var parseErr *time.ParseError
	if errors.As(err, &parseErr) {
		return invalidDateMessage, true
	}
	return "", false
}

// commandError answers a failed command: validation failures go to rerender
// (or 400 JSON), anything else is a 500.
func commandError(w http.ResponseWriter, r *http.Request, err error, rerender func(msg string)) {
	msg, ok := userMessage(err)
	if !ok {
		internalError(w, r, err)
		return
	}
	userError(w, r, errors.New(msg), rerender)
}

func logErr(r *http.Request, event string, err error) {
	logging.FromContext(r.Context()).Error(event, "path", r.URL.Path, "error", err)
}
