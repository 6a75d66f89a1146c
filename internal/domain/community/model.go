package community

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"beautrip/internal/domain/treatment"
)

// Category is a community board keyed by a URL slug.
type Category struct {
	Slug string
	Name string // matches treatment.MainCategories
	Icon string
}

// Categories lists the boards in home-page order.
var Categories = []Category{
	{Slug: "eyes", Name: treatment.CategoryEyes, Icon: "👀"},
	{Slug: "lifting", Name: treatment.CategoryLifting, Icon: "✨"},
	{Slug: "botox", Name: treatment.CategoryBotox, Icon: "💉"},
	{Slug: "facial", Name: treatment.CategoryContour, Icon: "😊"},
	{Slug: "hair-removal", Name: treatment.CategoryHairRemoval, Icon: "💫"},
	{Slug: "body", Name: treatment.CategoryFat, Icon: "🏃"},
	{Slug: "nose", Name: treatment.CategoryNose, Icon: "👃"},
	{Slug: "skin", Name: treatment.CategorySkin, Icon: "🌟"},
	{Slug: "filler", Name: treatment.CategoryFiller, Icon: "💎"},
	{Slug: "breast", Name: treatment.CategoryBreast, Icon: "💕"},
}

// CategoryBySlug resolves a board slug.
func CategoryBySlug(slug string) (Category, bool) {
	for _, c := range Categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return Category{}, false
}

// Section is a block on the consultation page.
type Section struct {
	ID    string
	Title string
	Icon  string
	Items []SectionItem
}

// SectionItem is an expandable row; HospitalLink adds a "병원 정보" button.
type SectionItem struct {
	ID           string
	Label        string
	SubItems     []string
	HospitalLink bool
}

// ConsultationSections is the fixed layout of the consultation page.
var ConsultationSections = []Section{
	{ID: "recovery", Title: "회복 수다", Icon: "💬", Items: []SectionItem{
		{ID: "surgery-done", Label: "수술 끝났어요", HospitalLink: true,
			SubItems: []string{"수술경과사진", "부작용", "염증 & 발열", "마사지 & 찜질", "성형메이크업"}},
		{ID: "recovery-chat", Label: "회복 수다방"},
	}},
	{ID: "questions", Title: "궁금해요", Icon: "❓", Items: []SectionItem{
		{ID: "ask-surgery", Label: "수술 전 궁금한 점", SubItems: []string{"후기글 작성자 DM"}},
	}},
	{ID: "skin-concerns", Title: "피부 고민", Icon: "😟", Items: []SectionItem{
		{ID: "skin-diseases", Label: "피부 질환", HospitalLink: true,
			SubItems: []string{"지루성", "아토피", "건선", "여드름", "안면홍조", "한포진", "사마귀", "광알러지", "피부건조", "점기미주근깨", "여성탈모"}},
	}},
	{ID: "travel", Title: "여행 일정", Icon: "✈️", Items: []SectionItem{
		{ID: "popular-itinerary", Label: "인기 여행 코스"},
		{ID: "ask-itinerary", Label: "일정 질문하기"},
	}},
}

// Group is a recovery guide group such as "nose" or "lifting".
type Group struct {
	Key     string `yaml:"key"`
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
}

// Guide is a single recovery guide post. Content is Markdown.
type Guide struct {
	ID      string `yaml:"id"`
	Group   string `yaml:"group"`
	Title   string `yaml:"title"`
	Weeks   int    `yaml:"weeks"` // recovery week the guide targets
	Content string `yaml:"content"`
}

// Library is the loaded set of recovery groups and guides.
type Library struct {
	Groups []Group `yaml:"groups"`
	Guides []Guide `yaml:"posts"`
}

//go:embed guides.yaml
var guidesYAML []byte

var (
	defaultOnce sync.Once
	defaultLib  *Library
	defaultErr  error
)

// DefaultLibrary returns the embedded recovery guides, parsed once.
func DefaultLibrary() (*Library, error) {
	defaultOnce.Do(func() {
		defaultLib, defaultErr = ParseLibrary(guidesYAML)
	})
	return defaultLib, defaultErr
}

// ParseLibrary decodes and checks a guides document.
// POST: every guide references a declared group; guide and group ids are unique
func ParseLibrary(data []byte) (*Library, error) {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parse recovery guides: %w", err)
	}
	groups := make(map[string]bool, len(lib.Groups))
	for _, g := range lib.Groups {
		if g.Key == "" || groups[g.Key] {
			return nil, fmt.Errorf("recovery group %q is empty or duplicated", g.Key)
		}
		groups[g.Key] = true
	}
	ids := make(map[string]bool, len(lib.Guides))
	for _, p := range lib.Guides {
		if p.ID == "" || ids[p.ID] {
			return nil, fmt.Errorf("recovery guide %q is empty or duplicated", p.ID)
		}
		if groups[p.ID] {
			return nil, fmt.Errorf("recovery guide %q collides with a group key", p.ID)
		}
		if !groups[p.Group] {
			return nil, fmt.Errorf("recovery guide %q references unknown group %q", p.ID, p.Group)
		}
		ids[p.ID] = true
	}
	return &lib, nil
}

// IsGroupKey reports whether key names a recovery group.
func (l *Library) IsGroupKey(key string) bool {
	_, ok := l.FindGroup(key)
	return ok
}

// FindGroup looks up a recovery group.
func (l *Library) FindGroup(key string) (Group, bool) {
	for _, g := range l.Groups {
		if g.Key == key {
			return g, true
		}
	}
	return Group{}, false
}

// FindGuide looks up a single guide post by id.
func (l *Library) FindGuide(id string) (Guide, bool) {
	for _, p := range l.Guides {
		if p.ID == id {
			return p, true
		}
	}
	return Guide{}, false
}

// GuidesInGroup returns a group's guides ordered by recovery week.
func (l *Library) GuidesInGroup(key string) []Guide {
	var out []Guide
	for _, p := range l.Guides {
		if p.Group == key {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weeks < out[j].Weeks })
	return out
}
