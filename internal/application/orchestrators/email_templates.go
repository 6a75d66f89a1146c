package orchestrators

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"beautrip/internal/domain/account"
	"beautrip/internal/domain/hospital"
	"beautrip/internal/domain/inquiry"
	domainOutbox "beautrip/internal/domain/outbox"
)

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!doctype html>
<html><body style="font-family:sans-serif">
<h2>{{.Name}}님, BeauTrip에 오신 것을 환영합니다!</h2>
<p>관심 있는 시술과 병원을 찜하고, 여행 일정에 맞춰 시술 일정을 계획해 보세요.</p>
<p>아이디: <strong>{{.LoginID}}</strong></p>
</body></html>`))

var inquiryTemplate = template.Must(template.New("inquiry").Parse(`<!doctype html>
<html><body style="font-family:sans-serif">
<h2>BeauTrip 상담 문의</h2>
<table>
<tr><td>병원</td><td>{{.Hospital}}</td></tr>
{{if .Treatment}}<tr><td>시술</td><td>{{.Treatment}}</td></tr>{{end}}
<tr><td>회신 방법</td><td>{{.Channel}}</td></tr>
<tr><td>연락처</td><td>{{.Contact}}</td></tr>
</table>
<p style="white-space:pre-wrap">{{.Message}}</p>
</body></html>`))

var channelLabels = map[string]string{
	inquiry.ChannelPhone: "전화",
	inquiry.ChannelEmail: "이메일",
	inquiry.ChannelChat:  "메신저",
}

func renderWelcome(acct account.Account) (domainOutbox.EmailPayload, error) {
	var buf bytes.Buffer
	data := struct{ Name, LoginID string }{acct.DisplayName(), acct.LoginID}
	if err := welcomeTemplate.Execute(&buf, data); err != nil {
		return domainOutbox.EmailPayload{}, fmt.Errorf("render welcome email: %w", err)
	}
	return domainOutbox.EmailPayload{
		To:       acct.Email,
		Subject:  "[BeauTrip] 회원가입을 환영합니다",
		HTML:     buf.String(),
		Text:     fmt.Sprintf("%s님, BeauTrip에 오신 것을 환영합니다!", data.Name),
		RefID:    acct.ID,
		Language: acct.PreferredLanguage,
	}, nil
}

func renderInquiry(q inquiry.Inquiry, h hospital.Hospital, treatmentName string) (domainOutbox.EmailPayload, error) {
	var buf bytes.Buffer
	data := struct{ Hospital, Treatment, Channel, Contact, Message string }{
		h.Name, treatmentName, channelLabels[q.Channel], q.Contact, strings.TrimSpace(q.Message),
	}
	if err := inquiryTemplate.Execute(&buf, data); err != nil {
		return domainOutbox.EmailPayload{}, fmt.Errorf("render inquiry email: %w", err)
	}
	payload := domainOutbox.EmailPayload{
		To:      h.Email,
		Subject: q.Subject(),
		HTML:    buf.String(),
		Text:    data.Message,
		RefID:   q.ID,
	}
	if q.Channel == inquiry.ChannelEmail {
		payload.ReplyTo = q.Contact
	}
	return payload, nil
}
