package record

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// The remote store emits lower-camel field names while older deployments
// emitted all-lowercase "playername". Decoding matches keys against this
// fixed alias set, case-insensitively, and never rewrites values. Keys
// outside the set are ignored.

// EncodeRecord serializes a record for a request body. Create bodies
// must not carry an id, since the store assigns one.
func EncodeRecord(rec ScoreRecord, withID bool) ([]byte, error) {
	if withID {
		return json.Marshal(rec)
	}
	body := struct {
		PlayerName string `json:"playerName"`
		Score      int    `json:"score"`
		CreatedAt  string `json:"createdAt"`
	}{rec.PlayerName, rec.Score, rec.CreatedAt}
	return json.Marshal(body)
}

// DecodeRecord deserializes a single record object
func DecodeRecord(data []byte) (ScoreRecord, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return ScoreRecord{}, fmt.Errorf("failed to unmarshal record object: %w", err)
	}
	return decodeFields(obj)
}

func decodeFields(obj map[string]json.RawMessage) (ScoreRecord, error) {
	var rec ScoreRecord
	for k, v := range obj {
		var err error
		switch strings.ToLower(k) {
		case "id":
			err = json.Unmarshal(v, &rec.ID)
		case "playername":
			err = json.Unmarshal(v, &rec.PlayerName)
		case "score":
			err = json.Unmarshal(v, &rec.Score)
		case "createdat":
			err = json.Unmarshal(v, &rec.CreatedAt)
		}
		if err != nil {
			return ScoreRecord{}, fmt.Errorf("failed to decode field %q: %w", k, err)
		}
	}
	if rec.PlayerName == "" {
		return ScoreRecord{}, fmt.Errorf("record is missing playerName")
	}
	return rec, nil
}

var itemsPrefix = []byte(`{"items":`)

// DecodePage deserializes a list response. The store returns a bare JSON
// array; some proxies wrap it in an object. An array root is wrapped in a
// synthetic {"items": ...} envelope so both shapes share one decode path.
func DecodePage(data []byte) ([]ScoreRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		wrapped := make([]byte, 0, len(itemsPrefix)+len(trimmed)+1)
		wrapped = append(wrapped, itemsPrefix...)
		wrapped = append(wrapped, trimmed...)
		wrapped = append(wrapped, '}')
		trimmed = wrapped
	}

	var env struct {
		Items []map[string]json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page envelope: %w", err)
	}

	records := make([]ScoreRecord, 0, len(env.Items))
	for _, obj := range env.Items {
		rec, err := decodeFields(obj)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// DecodeRank deserializes a rank-lookup response
func DecodeRank(data []byte) (RankRecord, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return RankRecord{}, fmt.Errorf("failed to unmarshal rank object: %w", err)
	}
	var rank RankRecord
	for k, v := range obj {
		var err error
		switch strings.ToLower(k) {
		case "player", "playername":
			err = json.Unmarshal(v, &rank.Player)
		case "score":
			err = json.Unmarshal(v, &rank.Score)
		case "rank":
			err = json.Unmarshal(v, &rank.Rank)
		}
		if err != nil {
			return RankRecord{}, fmt.Errorf("failed to decode field %q: %w", k, err)
		}
	}
	if rank.Player == "" {
		return RankRecord{}, fmt.Errorf("rank record is missing player")
	}
	return rank, nil
}
