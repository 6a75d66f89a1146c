package treatment

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Main (large) categories shown on the home page, ranking tabs and review forms.
const (
	CategoryEyes        = "눈성형"
	CategoryLifting     = "리프팅"
	CategoryBotox       = "보톡스"
	CategoryContour     = "안면윤곽/양악"
	CategoryHairRemoval = "제모"
	CategoryFat         = "지방성형"
	CategoryNose        = "코성형"
	CategorySkin        = "피부"
	CategoryFiller      = "필러"
	CategoryBreast      = "가슴성형"
)

// MainCategories is the fixed, ordered list of large categories.
var MainCategories = []string{
	CategoryEyes, CategoryLifting, CategoryBotox, CategoryContour, CategoryHairRemoval,
	CategoryFat, CategoryNose, CategorySkin, CategoryFiller, CategoryBreast,
}

// OtherMidCategory groups treatments with no mid category.
const OtherMidCategory = "기타"

// Sort keys accepted by SortBy.
const (
	SortDefault   = "default"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortReview    = "review"
)

// ValidSorts lists the accepted sort keys.
var ValidSorts = []string{SortDefault, SortPriceLow, SortPriceHigh, SortRating, SortReview}

// Treatment is a procedure offered by a hospital, mirrored from the catalog table.
// Every field may be absent; absent numbers are zero.
type Treatment struct {
	ID              int64
	Name            string
	HospitalID      int64
	HospitalName    string
	CategoryLarge   string
	CategoryMid     string
	CategorySmall   string
	Hashtags        string // raw, e.g. "#쌍꺼풀, #자연유착"
	SellingPrice    int64  // KRW
	OriginalPrice   int64  // KRW
	DiscountRate    int    // percent
	Rating          float64
	ReviewCount     int
	PopularityCount int
	ThumbnailURL    string
	Platform        string
}

var hashtagSeparators = regexp.MustCompile(`[,\s#]+`)

// HashtagList splits the raw hashtag field into individual tags.
// POST: no empty tags, original order kept, duplicates kept
func (t *Treatment) HashtagList() []string {
	parts := hashtagSeparators.Split(t.Hashtags, -1)
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// MatchesCategory reports whether the treatment belongs to a selected large category.
// Catalog category names are inconsistent, so containment is checked both ways and the
// treatment name is consulted as a last resort. An empty selection matches everything.
func (t *Treatment) MatchesCategory(selected string) bool {
	if selected == "" {
		return true
	}
	if containsEither(t.CategoryLarge, selected) || containsEither(t.CategoryMid, selected) {
		return true
	}
	return strings.Contains(strings.ToLower(t.Name), strings.ToLower(selected))
}

// MatchesHashtag reports whether tag occurs in the raw hashtag field, ignoring case.
func (t *Treatment) MatchesHashtag(tag string) bool {
	if tag == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Hashtags), strings.ToLower(tag))
}

// MatchesSearch reports whether term occurs in the name, hospital name or hashtags.
func (t *Treatment) MatchesSearch(term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	folder := cases.Fold()
	needle := folder.String(term)
	for _, field := range []string{t.Name, t.HospitalName, t.Hashtags} {
		if strings.Contains(folder.String(field), needle) {
			return true
		}
	}
	return false
}

// HasDiscount reports whether a discount badge should be shown.
func (t *Treatment) HasDiscount() bool {
	return t.DiscountRate > 0
}

// DisplayName falls back to a placeholder when the catalog row has no name.
func (t *Treatment) DisplayName() string {
	if t.Name == "" {
		return "시술명 없음"
	}
	return t.Name
}

// DisplayHospital falls back to a placeholder when the catalog row has no hospital.
func (t *Treatment) DisplayHospital() string {
	if t.HospitalName == "" {
		return "병원명 없음"
	}
	return t.HospitalName
}

// IsMainCategory reports whether c is one of the fixed large categories.
func IsMainCategory(c string) bool {
	for _, m := range MainCategories {
		if m == c {
			return true
		}
	}
	return false
}

// IsValidSort reports whether key is an accepted sort key.
func IsValidSort(key string) bool {
	for _, s := range ValidSorts {
		if s == key {
			return true
		}
	}
	return false
}

// SortBy returns a sorted copy of list. Unknown keys and SortDefault keep catalog order.
func SortBy(list []Treatment, key string) []Treatment {
	out := make([]Treatment, len(list))
	copy(out, list)
	var less func(a, b Treatment) bool
	switch key {
	case SortPriceLow:
		less = func(a, b Treatment) bool { return a.SellingPrice < b.SellingPrice }
	case SortPriceHigh:
		less = func(a, b Treatment) bool { return a.SellingPrice > b.SellingPrice }
	case SortRating:
		less = func(a, b Treatment) bool { return a.Rating > b.Rating }
	case SortReview:
		less = func(a, b Treatment) bool { return a.ReviewCount > b.ReviewCount }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// LargeCategories returns the sorted distinct large categories present in list.
func LargeCategories(list []Treatment) []string {
	set := make(map[string]struct{})
	for _, t := range list {
		if t.CategoryLarge != "" {
			set[t.CategoryLarge] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// MidCategories returns the sorted distinct mid categories under a large category.
// An empty large category yields no options.
func MidCategories(list []Treatment, large string) []string {
	if large == "" {
		return nil
	}
	set := make(map[string]struct{})
	for _, t := range list {
		if t.CategoryLarge == large && t.CategoryMid != "" {
			set[t.CategoryMid] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// CollectHashtags returns up to limit distinct hashtags across list, sorted.
func CollectHashtags(list []Treatment, limit int) []string {
	set := make(map[string]struct{})
	for i := range list {
		for _, tag := range list[i].HashtagList() {
			set[tag] = struct{}{}
		}
	}
	tags := sortedKeys(set)
	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}
	return tags
}

// SuggestSmallCategories powers the procedure autocomplete on the review forms.
// PRE: limit > 0
// POST: returns distinct small categories containing term (case-insensitive) in first-seen order,
// restricted to the large category when one is given; empty term yields nothing
func SuggestSmallCategories(list []Treatment, large, term string, limit int) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, t := range list {
		if large != "" && t.CategoryLarge != large {
			continue
		}
		small := strings.TrimSpace(t.CategorySmall)
		if small == "" || seen[small] {
			continue
		}
		if !strings.Contains(strings.ToLower(small), term) {
			continue
		}
		seen[small] = true
		out = append(out, small)
		if len(out) == limit {
			break
		}
	}
	return out
}

var midDescriptions = map[string]string{
	"주름보톡스": "주름이 많은 부위에 주사하여 주름을 펴주고 주름 예방 효과도 기대할 수 있어요.",
	"백옥주사":  "글루타치온 성분이 피부를 밝게 해주며, 항산화 작용을 동반하여 노화 방지에도 효과적이에요.",
	"리프팅":   "피부 탄력을 개선하고 처진 피부를 리프팅하여 더욱 젊어 보이게 해줍니다.",
	"필러":    "볼륨을 채워주고 윤곽을 개선하여 자연스러운 미모를 연출합니다.",
	"보톡스":   "근육을 이완시켜 주름을 예방하고 개선하는 효과가 있습니다.",
}

// CategoryDescription returns the blurb shown above a mid-category ranking row.
func CategoryDescription(mid string) string {
	if d, ok := midDescriptions[mid]; ok {
		return d
	}
	return mid + " 시술로 피부와 외모를 개선할 수 있어요."
}

func containsEither(field, selected string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(field, selected) || strings.Contains(selected, field)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
