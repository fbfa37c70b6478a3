package history

import "math"

// Summary aggregates a user's whole history.
type Summary struct {
	TotalQuizzes int `json:"totalQuizzes"`
	AverageScore int `json:"averageScore"` // percent
	BestScore    int `json:"bestScore"`    // percent
}

// TopicStat groups entries for one topic. Improvement is the latest
// percentage minus the first, chronologically.
type TopicStat struct {
	Topic       string  `json:"topic"`
	Attempts    int     `json:"attempts"`
	Best        int     `json:"best"`
	Average     int     `json:"average"`
	Improvement int     `json:"improvement"`
	Entries     []Entry `json:"entries"`
}

// Summarize is a pure pass over already-built entries; no store
// access.
func Summarize(entries []Entry) Summary {
	s := Summary{TotalQuizzes: len(entries)}
	if len(entries) == 0 {
		return s
	}
	sum := 0
	for _, e := range entries {
		sum += e.Percentage
		if e.Percentage > s.BestScore {
			s.BestScore = e.Percentage
		}
	}
	s.AverageScore = int(math.Round(float64(sum) / float64(len(entries))))
	return s
}

// TopicStats groups newest-first entries by topic. Within a group the
// input order is preserved (newest first), so "first" attempt is the
// last element and "latest" the first.
func TopicStats(entries []Entry) []TopicStat {
	order := []string{}
	groups := map[string][]Entry{}
	for _, e := range entries {
		if _, ok := groups[e.Topic]; !ok {
			order = append(order, e.Topic)
		}
		groups[e.Topic] = append(groups[e.Topic], e)
	}

	out := make([]TopicStat, 0, len(order))
	for _, topic := range order {
		g := groups[topic]
		st := TopicStat{Topic: topic, Attempts: len(g), Entries: g}
		sum := 0
		for _, e := range g {
			sum += e.Percentage
			if e.Percentage > st.Best {
				st.Best = e.Percentage
			}
		}
		st.Average = int(math.Round(float64(sum) / float64(len(g))))
		latest := g[0].Percentage
		first := g[len(g)-1].Percentage
		st.Improvement = latest - first
		out = append(out, st)
	}
	return out
}
