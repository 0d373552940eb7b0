package geprice

import "testing"

func TestSummarize(t *testing.T) {
	s := Summarize([]Record{
		rec("2015-08-01", 0, 150, 0),
		rec("2015-08-02", 100, 150, 10),
		rec("2015-08-03", 120, 151, 0),
		rec("2015-08-04", 90, 152, 30),
		rec("2015-08-05", 110, 153, 0),
	})

	if got, want := s.From.String(), "2015-08-02"; got != want {
		t.Errorf("From = %v, want %v", got, want)
	}
	if got, want := s.To.String(), "2015-08-05"; got != want {
		t.Errorf("To = %v, want %v", got, want)
	}
	if s.Days != 4 || s.TradedDays != 2 {
		t.Errorf("Days = %d, TradedDays = %d, want 4 and 2", s.Days, s.TradedDays)
	}
	if s.Min != 90 || s.Max != 120 {
		t.Errorf("Min = %d, Max = %d, want 90 and 120", s.Min, s.Max)
	}
	if got, want := s.MeanDaily.String(), "105"; got != want {
		t.Errorf("MeanDaily = %v, want %v", got, want)
	}
	if got, want := s.MeanVolume.String(), "20"; got != want {
		t.Errorf("MeanVolume = %v, want %v", got, want)
	}
	if got, want := s.Change.String(), "10"; got != want {
		t.Errorf("Change = %v, want %v", got, want)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Days != 0 || !s.MeanDaily.IsZero() || !s.Change.IsZero() {
		t.Errorf("Summarize(nil) = %+v, want zero", s)
	}
}
