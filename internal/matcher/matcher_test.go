package matcher

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rickgao/fpl-data/internal/model"
	"github.com/smartystreets/goconvey/convey"
)

type pickFirst struct{ calls int }

func (p *pickFirst) Resolve(_ context.Context, _ Candidate, _ model.Outcome, options []Option) (int, bool, error) {
	p.calls++
	if len(options) == 0 {
		return 0, false, nil
	}
	return options[0].ID, true, nil
}

func TestSimilarity(t *testing.T) {
	convey.Convey("Given two names", t, func() {
		convey.Convey("Then normalization ignores case, punctuation and accents", func() {
			convey.So(Normalize("  M. Salah "), convey.ShouldEqual, "m salah")
			convey.So(Normalize("Martin Ødegaard"), convey.ShouldEqual, "martin ødegaard")
			convey.So(Normalize("Raúl Jiménez"), convey.ShouldEqual, "raul jimenez")
			convey.So(Normalize("Nott'm Forest"), convey.ShouldEqual, "nottm forest")
		})

		convey.Convey("Then identical names score 1 and scores stay in [0, 1]", func() {
			convey.So(Similarity("Bukayo Saka", "bukayo saka"), convey.ShouldEqual, 1)
			convey.So(Similarity("", ""), convey.ShouldEqual, 0)
			s := Similarity("Haaland", "Xhaka")
			convey.So(s, convey.ShouldBeGreaterThanOrEqualTo, 0)
			convey.So(s, convey.ShouldBeLessThan, 1)
		})

		convey.Convey("Then an abbreviated first name clears the default threshold", func() {
			convey.So(Similarity("M. Salah", "Mohamed Salah"), convey.ShouldAlmostEqual, 1-6.0/13, 1e-9)
			convey.So(Similarity("M. Salah", "Mohamed Salah"), convey.ShouldBeGreaterThanOrEqualTo, DefaultThreshold)
		})
	})
}

func TestMatchTeams(t *testing.T) {
	convey.Convey("Given understat and fantasy team titles", t, func() {
		sources := []string{"Manchester United", "Wolverhampton Wanderers", "Liverpool", "Nottingham Forest", "Atlantis FC"}
		targets := []string{"Man Utd", "Wolves", "Liverpool", "Liverpool reserves", "Nott'm Forest"}

		got := MatchTeams(sources, targets, DefaultTeamThreshold)

		convey.Convey("Then known variants and exact titles resolve", func() {
			convey.So(got["Manchester United"], convey.ShouldEqual, "Man Utd")
			convey.So(got["Wolverhampton Wanderers"], convey.ShouldEqual, "Wolves")
			convey.So(got["Liverpool"], convey.ShouldEqual, "Liverpool")
			convey.So(got["Nottingham Forest"], convey.ShouldEqual, "Nott'm Forest")
		})

		convey.Convey("Then unknown titles stay unresolved", func() {
			_, ok := got["Atlantis FC"]
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}

func TestMatch(t *testing.T) {
	ctx := context.Background()

	convey.Convey("Given a target on Liverpool and candidates split across teams", t, func() {
		m := New(Config{}, nil, nil)
		sources := []Candidate{{ID: 1, Name: "M. Salah", Teams: []string{"Liverpool"}}}
		targets := []Candidate{
			{ID: 10, Name: "Mohamed Salah", Teams: []string{"Liverpool"}},
			{ID: 11, Name: "Mo Salah", Teams: []string{"Liverpool reserves"}},
		}

		table, err := m.Match(ctx, sources, targets)
		convey.So(err, convey.ShouldBeNil)
		rec := table.Records[0]

		convey.Convey("Then the team-filtered candidate is selected above threshold", func() {
			convey.So(rec.Outcome, convey.ShouldEqual, model.OutcomeMatched)
			convey.So(rec.TargetID, convey.ShouldEqual, 10)
			convey.So(rec.TargetName, convey.ShouldEqual, "Mohamed Salah")
			convey.So(rec.Confidence, convey.ShouldBeGreaterThanOrEqualTo, DefaultThreshold)
		})
	})

	convey.Convey("Given aliases on the target side", t, func() {
		m := New(Config{}, nil, nil)
		sources := []Candidate{{ID: 1, Name: "Son Heung-Min", Teams: []string{"Tottenham"}}}
		targets := []Candidate{
			{ID: 20, Name: "Son", Aliases: []string{"Heung-Min Son", "Son Heung-min"}, Teams: []string{"Spurs"}},
			{ID: 21, Name: "Maddison", Aliases: []string{"James Maddison"}, Teams: []string{"Spurs"}},
		}

		table, _ := m.Match(ctx, sources, targets)

		convey.Convey("Then the best variant decides", func() {
			convey.So(table.Records[0].TargetID, convey.ShouldEqual, 20)
			convey.So(table.Records[0].Confidence, convey.ShouldEqual, 1)
		})
	})

	convey.Convey("Given outcomes the matcher cannot settle alone", t, func() {
		targets := []Candidate{
			{ID: 30, Name: "Ben White", Teams: []string{"Arsenal"}},
			{ID: 31, Name: "Ben Whyte", Teams: []string{"Arsenal"}},
			{ID: 32, Name: "Gabriel", Teams: []string{"Arsenal"}},
		}
		sources := []Candidate{
			{ID: 1, Name: "Ben Whxte", Teams: []string{"Arsenal"}},
			{ID: 2, Name: "Zzzzzzzzzzzz", Teams: []string{"Arsenal"}},
			{ID: 3, Name: "Ben White", Teams: []string{"Atlantis FC"}},
		}

		convey.Convey("When the default resolver rejects", func() {
			table, err := New(Config{}, nil, nil).Match(ctx, sources, targets)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then each is recorded unmatched with its reason", func() {
				convey.So(table.Records[0].Outcome, convey.ShouldEqual, model.OutcomeAmbiguous)
				convey.So(table.Records[0].TargetID, convey.ShouldEqual, 0)
				convey.So(table.Records[1].Outcome, convey.ShouldEqual, model.OutcomeBelowThreshold)
				convey.So(table.Records[2].Outcome, convey.ShouldEqual, model.OutcomeNoTeam)
				convey.So(len(table.Unmatched()), convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When a resolver accepts", func() {
			r := &pickFirst{}
			table, err := New(Config{}, r, nil).Match(ctx, sources, targets)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the records become resolved", func() {
				convey.So(r.calls, convey.ShouldEqual, 3)
				convey.So(table.Records[0].Outcome, convey.ShouldEqual, model.OutcomeResolved)
				convey.So(table.Records[0].TargetID, convey.ShouldBeIn, []int{30, 31})
				convey.So(table.Records[2].Outcome, convey.ShouldEqual, model.OutcomeResolved)
				convey.So(table.Records[2].TargetID, convey.ShouldEqual, 30)
			})
		})
	})

	convey.Convey("Given two sources that pick the same target", t, func() {
		m := New(Config{}, nil, nil)
		sources := []Candidate{
			{ID: 1, Name: "Gabriel Jesus", Teams: []string{"Arsenal"}},
			{ID: 2, Name: "Gabriel Magalhaes", Teams: []string{"Arsenal"}},
		}
		targets := []Candidate{{ID: 40, Name: "Gabriel", Teams: []string{"Arsenal"}}}

		table, _ := m.Match(ctx, sources, targets)

		convey.Convey("Then both are kept and flagged as duplicates", func() {
			convey.So(table.Records[0].TargetID, convey.ShouldEqual, 40)
			convey.So(table.Records[1].TargetID, convey.ShouldEqual, 40)
			convey.So(table.Duplicates()[40], convey.ShouldResemble, []int{1, 2})
		})
	})
}

func TestPromptResolver(t *testing.T) {
	convey.Convey("Given an operator at a prompt", t, func() {
		options := []Option{
			{Candidate: Candidate{ID: 30, Name: "Ben White"}, Score: 0.9},
			{Candidate: Candidate{ID: 31, Name: "Ben Whyte"}, Score: 0.9},
		}
		src := Candidate{ID: 1, Name: "Ben Whitx", Teams: []string{"Arsenal"}}

		convey.Convey("When they enter an invalid then a valid choice", func() {
			var out bytes.Buffer
			p := &PromptResolver{In: strings.NewReader("7\n2\n"), Out: &out}
			id, ok, err := p.Resolve(context.Background(), src, model.OutcomeAmbiguous, options)

			convey.So(err, convey.ShouldBeNil)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(id, convey.ShouldEqual, 31)
			convey.So(out.String(), convey.ShouldContainSubstring, "Ben Whitx (Arsenal): ambiguous")
			convey.So(out.String(), convey.ShouldContainSubstring, "enter a number between 0 and 2")
		})

		convey.Convey("When they reject or input ends", func() {
			p := &PromptResolver{In: strings.NewReader("0\n"), Out: &bytes.Buffer{}}
			_, ok, err := p.Resolve(context.Background(), src, model.OutcomeAmbiguous, options)
			convey.So(err, convey.ShouldBeNil)
			convey.So(ok, convey.ShouldBeFalse)

			_, ok, err = p.Resolve(context.Background(), src, model.OutcomeAmbiguous, options)
			convey.So(err, convey.ShouldBeNil)
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}
