package world

import "fmt"

type Weather uint8

const (
	WeatherClear Weather = iota
	WeatherRain
	WeatherThunder
)

var weatherNames = [...]string{"clear", "rain", "thunder"}

func (w Weather) String() string {
	if int(w) < len(weatherNames) {
		return weatherNames[w]
	}
	return fmt.Sprintf("weather(%d)", uint8(w))
}

// Wet reports whether rain falls.
func (w Weather) Wet() bool { return w == WeatherRain || w == WeatherThunder }

func (w Weather) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

func (w *Weather) UnmarshalText(b []byte) error {
	for i, n := range weatherNames {
		if n == string(b) {
			*w = Weather(i)
			return nil
		}
	}
	return fmt.Errorf("unknown weather %q", string(b))
}

type Season uint8

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

var seasonNames = [...]string{"spring", "summer", "autumn", "winter"}

// DaysPerSeason is the number of in-game days before the season advances.
const DaysPerSeason = 4

// SeasonAt derives the season from the elapsed world time.
func SeasonAt(worldTime, dayLength float64) Season {
	if dayLength <= 0 {
		return Spring
	}
	day := int(worldTime / dayLength)
	return Season((day / DaysPerSeason) % len(seasonNames))
}

func (s Season) String() string {
	if int(s) < len(seasonNames) {
		return seasonNames[s]
	}
	return fmt.Sprintf("season(%d)", uint8(s))
}

func (s Season) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Season) UnmarshalText(b []byte) error {
	for i, n := range seasonNames {
		if n == string(b) {
			*s = Season(i)
			return nil
		}
	}
	return fmt.Errorf("unknown season %q", string(b))
}
