package sportmonks

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// fixturesResponse is the envelope of list endpoints (livescores, fixtures/date)
type fixturesResponse struct {
	Data []RawFixture `json:"data"`
}

// fixtureResponse is the envelope of fixtures/{id}
type fixtureResponse struct {
	Data *RawFixture `json:"data"`
}

// RawFixture is a fixture as returned by the provider with the
// participants, league.country, scores, state and statistics includes.
// Every nested section may be absent.
type RawFixture struct {
	ID                  FlexInt          `json:"id"`
	Name                string           `json:"name"`
	StartingAt          string           `json:"starting_at"`
	StartingAtTimestamp FlexInt          `json:"starting_at_timestamp"`
	League              *RawLeague       `json:"league"`
	Participants        []RawParticipant `json:"participants"`
	Scores              []RawScore       `json:"scores"`
	State               *RawState        `json:"state"`
	Statistics          []RawStatistic   `json:"statistics"`
}

// RawLeague is the league include
type RawLeague struct {
	ID      FlexInt     `json:"id"`
	Name    string      `json:"name"`
	Country *RawCountry `json:"country"`
}

// RawCountry is the league.country include
type RawCountry struct {
	Name string `json:"name"`
}

// RawParticipant is a team taking part in a fixture
type RawParticipant struct {
	ID        FlexInt `json:"id"`
	Name      string  `json:"name"`
	ImagePath string  `json:"image_path"`
	Meta      struct {
		Location string `json:"location"`
	} `json:"meta"`
}

// RawScore is one entry of the scores include
type RawScore struct {
	ParticipantID FlexInt `json:"participant_id"`
	Description   string  `json:"description"`
	Score         struct {
		Goals       FlexInt `json:"goals"`
		Participant string  `json:"participant"`
	} `json:"score"`
}

// RawState is the state include
type RawState struct {
	State         string `json:"state"`
	ShortName     string `json:"short_name"`
	DeveloperName string `json:"developer_name"`
}

// RawStatistic is one entry of the statistics include. Type is either an
// object with a name or a bare string; the value sits under data.value or
// directly under value.
type RawStatistic struct {
	ParticipantID FlexInt         `json:"participant_id"`
	Type          StatType        `json:"type"`
	Data          *RawStatData    `json:"data"`
	Value         json.RawMessage `json:"value"`
}

// RawStatData wraps a statistic value
type RawStatData struct {
	Value json.RawMessage `json:"value"`
}

// StatType accepts both {"name": "Corners"} and "Corners"
type StatType struct {
	Name     string // from the object form
	Label    string // from the string form
	IsString bool
}

// UnmarshalJSON implements the two accepted shapes
func (t *StatType) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		t.IsString = true
		return json.Unmarshal(data, &t.Label)
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// Unknown shape: treat as unnamed rather than failing the payload
		return nil
	}
	t.Name = obj.Name
	return nil
}

// FlexInt decodes an integer sent as a JSON number or numeric string.
// null, empty and unparseable values decode to 0.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*n = FlexInt(v)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*n = FlexInt(int64(f))
		return nil
	}
	*n = 0
	return nil
}

// String formats the value as a decimal string
func (n FlexInt) String() string {
	return strconv.FormatInt(int64(n), 10)
}
