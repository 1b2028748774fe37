package numbering

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		kind  Kind
		value int64
		want  string
	}{
		{KindSerial, 1, "INV-00001"},
		{KindMRN, 42, "MRN-00042"},
		{KindGIN, 99999, "GIN-99999"},
		{KindSerial, 123456, "INV-123456"},
	}
	for _, tt := range tests {
		if got := Format(tt.kind, tt.value); got != tt.want {
			t.Errorf("Format(%s, %d) = %q, want %q", tt.kind, tt.value, got, tt.want)
		}
	}
}

func TestNumericSuffix(t *testing.T) {
	tests := []struct {
		ref  string
		want int64
	}{
		{"INV-00001", 1},
		{"MRN-00042", 42},
		{"GIN-99999", 99999},
		{"INV-123456", 123456},
		{"garbage", 0},
		{"", 0},
		{"INV-", 0},
	}
	for _, tt := range tests {
		if got := NumericSuffix(tt.ref); got != tt.want {
			t.Errorf("NumericSuffix(%q) = %d, want %d", tt.ref, got, tt.want)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, kind := range Kinds() {
		for _, v := range []int64{1, 10, 500, 99999} {
			ref := Format(kind, v)
			if got := NumericSuffix(ref); got != v {
				t.Errorf("NumericSuffix(Format(%s, %d)) = %d", kind, v, got)
			}
		}
	}
}
