package util_test

import (
	"math"
	"testing"

	"github.com/tracklab/cpsa/util"
)

func TestParseInt(t *testing.T) {
	if got := util.ParseInt("42", 0); got != 42 {
		t.Errorf("ParseInt valid: got %d", got)
	}
	if got := util.ParseInt("nope", 7); got != 7 {
		t.Errorf("ParseInt fallback: got %d", got)
	}
}

func TestParseBool(t *testing.T) {
	if !util.ParseBool("true", false) {
		t.Error("ParseBool true failed")
	}
	if !util.ParseBool("garbage", true) {
		t.Error("ParseBool fallback failed")
	}
}

func TestParseFloat(t *testing.T) {
	if got := util.ParseFloat("0.15", 0); got != 0.15 {
		t.Errorf("ParseFloat valid: got %v", got)
	}
	if got := util.ParseFloat("", math.NaN()); !util.IsUnsetFloat(got) {
		t.Errorf("ParseFloat empty should fall back: got %v", got)
	}
	if got := util.ParseFloat("abc", 3.5); got != 3.5 {
		t.Errorf("ParseFloat malformed: got %v", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]util.LogLevel{
		"debug":   util.LogLevelDebug,
		"INFO":    util.LogLevelInfo,
		"warning": util.LogLevelWarn,
		"error":   util.LogLevelError,
		"bogus":   util.LogLevelInfo,
	}
	for in, want := range cases {
		if got := util.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): got %v, want %v", in, got, want)
		}
	}
}
