package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestChimeLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(48000)
	c := NewChime(880, 10*time.Millisecond, rate)

	total := 0
	buf := make([][2]float64, 128)
	for {
		n, ok := c.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -0.5 || buf[i][0] > 0.5 {
				t.Fatalf("sample %d out of range: %v", total+i, buf[i][0])
			}
			if buf[i][0] != buf[i][1] {
				t.Fatalf("sample %d is not mono", total+i)
			}
		}
		total += n
		if !ok {
			break
		}
	}

	if want := rate.N(10 * time.Millisecond); total != want {
		t.Errorf("expected %d samples, got %d", want, total)
	}
	if c.Err() != nil {
		t.Errorf("expected no error, got %v", c.Err())
	}
}

func TestChimeFadesOut(t *testing.T) {
	rate := beep.SampleRate(48000)
	c := NewChime(1000, 100*time.Millisecond, rate)

	buf := make([][2]float64, rate.N(100*time.Millisecond))
	n, _ := c.Stream(buf)

	peak := func(from, to int) float64 {
		var m float64
		for i := from; i < to; i++ {
			if v := buf[i][0]; v > m {
				m = v
			}
		}
		return m
	}
	early := peak(0, n/10)
	late := peak(n-n/10, n)
	if late >= early {
		t.Errorf("expected fade out, early peak %v late peak %v", early, late)
	}
}

func TestNilPlayerIsSilent(t *testing.T) {
	p, err := NewPlayer(false, 880, 120*time.Millisecond)
	if err != nil || p != nil {
		t.Fatalf("expected disabled player, got %v, %v", p, err)
	}
	p.PlayUnlock()
	p.Close()
}
