package domain

import (
	"testing"

	"gorm.io/datatypes"

	courierdomain "github.com/gwak2837/shabangnet-sub003/internal/courier/domain"
)

func TestResolveCourierMatchesNamesAndAliases(t *testing.T) {
	lookup := BuildCourierLookup([]courierdomain.CourierMapping{
		{
			Code:    "CJGLS",
			Name:    "CJ대한통운",
			Aliases: datatypes.NewJSONSlice([]string{"CJ택배", "대한통운"}),
			Enabled: true,
		},
		{
			Code:    "HANJIN",
			Name:    "한진택배",
			Enabled: true,
		},
	})

	cases := []struct {
		in   string
		want string
	}{
		{"CJ대한통운", "CJGLS"},
		{"  cj택배  ", "CJGLS"},
		{"대한통운", "CJGLS"},
		{"한진택배", "HANJIN"},
	}
	for _, tc := range cases {
		code, ok := ResolveCourier(lookup, tc.in)
		if !ok {
			t.Errorf("ResolveCourier(%q): no match", tc.in)
			continue
		}
		if code != tc.want {
			t.Errorf("ResolveCourier(%q) = %q, want %q", tc.in, code, tc.want)
		}
	}

	if _, ok := ResolveCourier(lookup, "우체국"); ok {
		t.Fatal("unknown courier name must not resolve")
	}
}

func TestAliasNeverShadowsCanonicalName(t *testing.T) {
	lookup := BuildCourierLookup([]courierdomain.CourierMapping{
		{
			Code:    "LOTTE",
			Name:    "롯데택배",
			Aliases: datatypes.NewJSONSlice([]string{"한진택배"}),
			Enabled: true,
		},
		{
			Code:    "HANJIN",
			Name:    "한진택배",
			Enabled: true,
		},
	})

	code, ok := ResolveCourier(lookup, "한진택배")
	if !ok || code != "HANJIN" {
		t.Fatalf("canonical name must win over alias, got %q ok=%v", code, ok)
	}
}

func TestBuildCourierLookupSkipsDisabled(t *testing.T) {
	lookup := BuildCourierLookup([]courierdomain.CourierMapping{
		{Code: "LOGEN", Name: "로젠택배", Enabled: false},
	})

	if _, ok := ResolveCourier(lookup, "로젠택배"); ok {
		t.Fatal("disabled mapping must not resolve")
	}
}
