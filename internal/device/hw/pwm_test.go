package hw

import (
	"testing"

	"github.com/spf13/afero"
)

const testPWMDir = "/sys/class/pwm/pwmchip0/pwm0"

func readAttr(t *testing.T, fs afero.Fs, attr string) string {
	t.Helper()
	b, err := afero.ReadFile(fs, testPWMDir+"/"+attr)
	if err != nil {
		t.Fatalf("read %s: %v", attr, err)
	}
	return string(b)
}

func TestSysfsPWM_EnablesChannel(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := NewSysfsPWM(fs, testPWMDir, 1_000_000); err != nil {
		t.Fatalf("NewSysfsPWM: %v", err)
	}
	if got := readAttr(t, fs, "period"); got != "1000000" {
		t.Errorf("period = %q", got)
	}
	if got := readAttr(t, fs, "enable"); got != "1" {
		t.Errorf("enable = %q", got)
	}
	if got := readAttr(t, fs, "duty_cycle"); got != "0" {
		t.Errorf("duty_cycle = %q", got)
	}
}

func TestSysfsPWM_SetCompareScalesToPeriod(t *testing.T) {
	fs := afero.NewMemMapFs()
	p, err := NewSysfsPWM(fs, testPWMDir, 255_000)
	if err != nil {
		t.Fatalf("NewSysfsPWM: %v", err)
	}
	tests := []struct {
		compare uint8
		want    string
	}{
		{0, "0"},
		{127, "127000"},
		{191, "191000"},
		{255, "255000"},
	}
	for _, tt := range tests {
		if err := p.SetCompare(tt.compare); err != nil {
			t.Fatalf("SetCompare(%d): %v", tt.compare, err)
		}
		if got := readAttr(t, fs, "duty_cycle"); got != tt.want {
			t.Errorf("SetCompare(%d): duty_cycle = %q, want %q", tt.compare, got, tt.want)
		}
	}
}

func TestSysfsPWM_RejectsZeroPeriod(t *testing.T) {
	if _, err := NewSysfsPWM(afero.NewMemMapFs(), testPWMDir, 0); err == nil {
		t.Fatalf("expected error for zero period")
	}
}

func TestSysfsPWM_ReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	if _, err := NewSysfsPWM(fs, testPWMDir, 1000); err == nil {
		t.Fatalf("expected error on read-only filesystem")
	}
}
