package model

import (
	"bytes"
	"fmt"

	"github.com/bytedance/sonic"
)

// codec matches encoding/json behavior so stored values stay portable.
var codec = sonic.ConfigStd

// EncodeFavorites serializes a favorites collection as a JSON array.
// A nil collection encodes as an empty array.
func EncodeFavorites(favorites []FavoriteTeam) (string, error) {
	if favorites == nil {
		favorites = []FavoriteTeam{}
	}
	data, err := codec.Marshal(favorites)
	if err != nil {
		return "", fmt.Errorf("failed to encode favorites: %w", err)
	}
	return string(data), nil
}

// DecodeFavorites parses a JSON array of favorites.
// A JSON null decodes as an empty collection. Records without a positive id
// are rejected. Duplicate ids are collapsed, keeping the first occurrence.
func DecodeFavorites(raw string) ([]FavoriteTeam, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("failed to parse favorites: empty value")
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return []FavoriteTeam{}, nil
	}

	var favorites []FavoriteTeam
	if err := codec.Unmarshal(trimmed, &favorites); err != nil {
		return nil, fmt.Errorf("failed to parse favorites: %w", err)
	}

	seen := make(map[int]bool, len(favorites))
	out := make([]FavoriteTeam, 0, len(favorites))
	for i, fav := range favorites {
		if fav.ID <= 0 {
			return nil, fmt.Errorf("failed to parse favorites: record %d has invalid id %d", i, fav.ID)
		}
		if seen[fav.ID] {
			continue
		}
		seen[fav.ID] = true
		out = append(out, fav)
	}
	return out, nil
}

// EncodeSession serializes a session record.
func EncodeSession(s *Session) (string, error) {
	data, err := codec.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}
	return string(data), nil
}

// DecodeSession parses a session record.
func DecodeSession(raw string) (*Session, error) {
	var s Session
	if err := codec.UnmarshalFromString(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	if s.Username == "" || s.Token == "" {
		return nil, fmt.Errorf("failed to parse session: missing username or token")
	}
	return &s, nil
}
