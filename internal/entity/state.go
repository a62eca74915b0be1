package entity

// Default values of a fresh state.
const (
	DefaultGoal               = 5
	DefaultDailyCorrectTarget = 15
)

// ActivityDay holds the per-date counters of the activity ledger.
type ActivityDay struct {
	WordsAdded int `json:"wordsAdded"`
	Correct    int `json:"correct"`
}

// Stats accumulates practice results. All counters only grow except AnswerStreak.
type Stats struct {
	CorrectAnswers int `json:"correctAnswers"`
	QuizzesTaken   int `json:"quizzesTaken"`
	TypingCorrect  int `json:"typingCorrect"`
	XP             int `json:"xp"`
	AnswerStreak   int `json:"answerStreak"`
}

// Challenges configures the daily challenge and remembers the last bonus.
type Challenges struct {
	DailyCorrectTarget int     `json:"dailyCorrectTarget"`
	BonusClaimedDate   *string `json:"bonusClaimedDate"`
}

// AppState is the whole persisted document.
type AppState struct {
	Words      []Word                  `json:"words"`
	Rules      []Rule                  `json:"rules"`
	Idioms     []Idiom                 `json:"idioms"`
	Stats      Stats                   `json:"stats"`
	Activity   map[string]*ActivityDay `json:"activity"`
	Goal       int                     `json:"goal"`
	TodayAdded int                     `json:"todayAdded"`
	Streak     int                     `json:"streak"`
	LastVisit  *string                 `json:"lastVisit"`
	Challenges Challenges              `json:"challenges"`
}

// NewAppState returns the default state.
func NewAppState() *AppState {
	return &AppState{
		Words:      []Word{},
		Rules:      []Rule{},
		Idioms:     []Idiom{},
		Activity:   map[string]*ActivityDay{},
		Goal:       DefaultGoal,
		Challenges: Challenges{DailyCorrectTarget: DefaultDailyCorrectTarget},
	}
}

// Clone returns a deep copy so callers can read it outside the session lock.
func (s *AppState) Clone() *AppState {
	out := *s
	out.Words = make([]Word, len(s.Words))
	for i, w := range s.Words {
		w.Tags = append([]string(nil), w.Tags...)
		out.Words[i] = w
	}
	out.Rules = append([]Rule{}, s.Rules...)
	out.Idioms = append([]Idiom{}, s.Idioms...)
	out.Activity = make(map[string]*ActivityDay, len(s.Activity))
	for k, v := range s.Activity {
		day := *v
		out.Activity[k] = &day
	}
	if s.LastVisit != nil {
		v := *s.LastVisit
		out.LastVisit = &v
	}
	if s.Challenges.BonusClaimedDate != nil {
		v := *s.Challenges.BonusClaimedDate
		out.Challenges.BonusClaimedDate = &v
	}
	return &out
}

// LearnedCount returns how many words are marked as learned.
func (s *AppState) LearnedCount() int {
	n := 0
	for _, w := range s.Words {
		if w.Learned {
			n++
		}
	}
	return n
}
