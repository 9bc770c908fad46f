package interaction

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-sigpath/pkg/sign"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		label    string
		wantSign sign.Sign
		wantType string
	}{
		{"component>", sign.None, TypeComponent},
		{"-component>", sign.None, TypeComponent},
		{"-a>", sign.Positive, "a"},
		{"a>", sign.Positive, "a"},
		{"-t>", sign.Positive, "t"},
		{"-t|", sign.Negative, "t"},
		{"-a|", sign.Negative, "a"},
		{"HPRD>", sign.Positive, TypeInteracts},
		{"REWIRED>", sign.Positive, TypeRewired},
		{"-REWIRED>", sign.Positive, TypeRewired},
		{"REWIRED|", sign.Negative, TypeRewired},
		{"-REWIRED|", sign.Negative, TypeRewired},
		{"", sign.Positive, TypeInteracts},
		{"- >", sign.Positive, TypeInteracts},
		{"--a>", sign.Positive, TypeInteracts},
		{"component|", sign.Positive, TypeInteracts},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := Classify(tt.label)
			if got.Sign != tt.wantSign || got.Type != tt.wantType {
				t.Errorf("Classify(%q) = (%v, %q), want (%v, %q)",
					tt.label, got.Sign, got.Type, tt.wantSign, tt.wantType)
			}
		})
	}
}

func TestClassification_Helpers(t *testing.T) {
	if !Classify("component>").Structural() {
		t.Error("component> should be structural")
	}
	if Classify("-a>").Structural() {
		t.Error("-a> should not be structural")
	}
	if !Classify("-t|").Transcriptional() {
		t.Error("-t| should be transcriptional")
	}
	if Classify("-a|").Transcriptional() {
		t.Error("-a| should not be transcriptional")
	}
}

func TestIsRewired(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"REWIRED>", true},
		{"-REWIRED|", true},
		{"xREWIREDx", true},
		{"-component>", true},
		{"pre-component-suffix", true},
		{"component>", false},
		{"-a>", false},
		{"HPRD>", false},
		{"rewired>", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := IsRewired(tt.label); got != tt.want {
				t.Errorf("IsRewired(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestClassifyProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	prefixed := func(dash bool, s string) string {
		if dash {
			return "-" + s
		}
		return s
	}

	properties.Property("component labels carry no sign", prop.ForAll(
		func(dash bool) bool {
			return Classify(prefixed(dash, "component>")).Sign == sign.None
		},
		gen.Bool(),
	))

	properties.Property("single-char activating labels", prop.ForAll(
		func(dash bool, x rune) bool {
			c := Classify(prefixed(dash, string(x)+">"))
			return c.Sign == sign.Positive && c.Type == string(x)
		},
		gen.Bool(),
		gen.AlphaNumChar(),
	))

	properties.Property("single-char inactivating labels", prop.ForAll(
		func(dash bool, x rune) bool {
			c := Classify(prefixed(dash, string(x)+"|"))
			return c.Sign == sign.Negative && c.Type == string(x)
		},
		gen.Bool(),
		gen.AlphaNumChar(),
	))

	properties.Property("classification is total", prop.ForAll(
		func(label string) bool {
			c := Classify(label)
			return c.Type != "" && (c.Sign == sign.None || c.Sign.Defined())
		},
		gen.AnyString(),
	))

	properties.Property("rewired iff marker substring", prop.ForAll(
		func(label string) bool {
			want := strings.Contains(label, "REWIRED") || strings.Contains(label, "-component")
			return IsRewired(label) == want
		},
		gen.OneGenOf(
			gen.AlphaString(),
			gen.AlphaString().Map(func(s string) string { return s + "REWIRED" + s }),
			gen.AlphaString().Map(func(s string) string { return s + "-component" }),
		),
	))

	properties.TestingRun(t)
}
