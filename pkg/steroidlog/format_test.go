package steroidlog

import (
	"strings"
	"testing"
)

// render is a test helper running the full literal+args path without a
// logger.
func render(t *testing.T, literal string, limit int, args ...Arg) (string, bool) {
	t.Helper()
	var rec record
	if rec.pack(12345, args) {
		t.Fatalf("pack truncated %d args", len(args))
	}
	out, truncated := renderLine(nil, literal, &rec, limit)
	return string(out), truncated
}

func TestRenderPlaceholders(t *testing.T) {
	tests := []struct {
		name    string
		literal string
		args    []Arg
		want    string
	}{
		{"no placeholders", "[INFO] plain", nil, "[INFO] plain\n"},
		{"one uint", "[INFO] Test {}", []Arg{Uint(uint64(42))}, "[INFO] Test 42\n"},
		{"one string", "[DEBUG] Hello {}", []Arg{Str("world")}, "[DEBUG] Hello world\n"},
		{"one float", "[WARNING] Number: {}", []Arg{Float(1.234)}, "[WARNING] Number: 1.234\n"},
		{"negative int", "[INFO] delta {}", []Arg{Int(-17)}, "[INFO] delta -17\n"},
		{"several", "[INFO] {}+{}={}", []Arg{Int(1), Int(2), Int(3)}, "[INFO] 1+2=3\n"},
		{"escaped braces", "[INFO] {{}}", nil, "[INFO] {}\n"},
		{"escaped around placeholder", "[INFO] {{{}}}", []Arg{Int(7)}, "[INFO] {7}\n"},
		{"lone open brace", "[INFO] a{b", nil, "[INFO] a{b\n"},
		{"lone close brace", "[INFO] a}b", nil, "[INFO] a}b\n"},
		{"trailing open brace", "[INFO] tail{", nil, "[INFO] tail{\n"},
		{"extra placeholder", "[INFO] {} and {}", []Arg{Str("one")}, "[INFO] one and {}\n"},
		{"extra args ignored", "[INFO] only {}", []Arg{Int(1), Int(2), Int(3)}, "[INFO] only 1\n"},
		{"empty string arg", "[INFO] <{}>", []Arg{Str("")}, "[INFO] <>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := render(t, tt.literal, DefaultMaxMsgLen-1, tt.args...)
			if got != tt.want {
				t.Errorf("render(%q) = %q, want %q", tt.literal, got, tt.want)
			}
			if truncated {
				t.Errorf("render(%q) reported truncation", tt.literal)
			}
		})
	}
}

func TestRenderFloats(t *testing.T) {
	got, _ := render(t, "{}", 255, Float(1.234))
	if got != "1.234\n" {
		t.Errorf("Float(1.234) rendered %q", got)
	}
	got, _ = render(t, "{}", 255, Float(float32(0.5)))
	if got != "0.5\n" {
		t.Errorf("Float(0.5) rendered %q", got)
	}
	got, _ = render(t, "{}", 255, Float(2.0))
	if !strings.HasPrefix(got, "2") {
		t.Errorf("Float(2.0) rendered %q", got)
	}
	// The dot separator with full precision for awkward values.
	got, _ = render(t, "{}", 255, Float(1.0/3.0))
	if !strings.HasPrefix(got, "0.333333") {
		t.Errorf("Float(1/3) rendered %q, want at least six significant digits", got)
	}
}

func TestRenderTruncation(t *testing.T) {
	long := strings.Repeat("x", 400)
	got, truncated := render(t, "[INFO] {}", 255, Str(long))
	if !truncated {
		t.Error("expected truncation")
	}
	if len(got) != 256 {
		t.Errorf("line length = %d, want 255 body bytes + newline", len(got))
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("truncated line must still end in a newline")
	}
	if strings.Count(got, "\n") != 1 {
		t.Error("exactly one newline per line")
	}
}

func TestRenderTruncationRespectsConfiguredCap(t *testing.T) {
	got, truncated := render(t, "[INFO] 0123456789", 10)
	if !truncated {
		t.Error("expected truncation at limit 10")
	}
	if got != "[INFO] 012\n" {
		t.Errorf("got %q", got)
	}
}

func TestRenderUnknown(t *testing.T) {
	got := string(renderUnknown(nil, 3735928559, 255))
	if got != "<unknown fmt id=3735928559>\n" {
		t.Errorf("renderUnknown = %q", got)
	}
	// The fallback body is subject to the same cap.
	short := string(renderUnknown(nil, 3735928559, 10))
	if short != "<unknown f\n" {
		t.Errorf("capped renderUnknown = %q", short)
	}
}
