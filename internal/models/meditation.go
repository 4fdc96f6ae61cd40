package models

// Meditation is one day's CODE reflection on a scripture passage.
// Date is the natural key: at most one meditation exists per day.
type Meditation struct {
	Date           string `json:"date"` // YYYY-MM-DD format
	BibleReference string `json:"bibleReference"`
	Title          string `json:"title"`
	Capture        string `json:"capture"`
	Organize       string `json:"organize"`
	Distill        string `json:"distill"`
	Express        string `json:"express"`
}

// SearchFields returns the text fields covered by free-text search, in display order.
func (m Meditation) SearchFields() []string {
	return []string{m.Title, m.BibleReference, m.Capture, m.Organize, m.Distill, m.Express}
}

// Stage is one step of the CODE method.
type Stage struct {
	Key         string
	Name        string
	Korean      string
	Description string
}

// Stages lists the four CODE stages in order.
var Stages = []Stage{
	{Key: "capture", Name: "Capture", Korean: "포착하기", Description: "말씀을 읽으며 마음에 와닿는 구절이나 단어를 포착합니다."},
	{Key: "organize", Name: "Organize", Korean: "조직화하기", Description: "포착한 말씀의 문맥을 살피고, 관련 구절들을 연결하여 의미를 정리합니다."},
	{Key: "distill", Name: "Distill", Korean: "압축하기", Description: "말씀을 통해 깨달은 핵심 진리를 한 문장으로 정리합니다."},
	{Key: "express", Name: "Express", Korean: "표현하기", Description: "깨달은 진리를 기도로 표현하고, 구체적인 적용점을 찾습니다."},
}

// StageText returns the meditation's text for the given stage key.
func (m Meditation) StageText(key string) string {
	switch key {
	case "capture":
		return m.Capture
	case "organize":
		return m.Organize
	case "distill":
		return m.Distill
	case "express":
		return m.Express
	default:
		return ""
	}
}
