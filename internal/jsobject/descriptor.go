package jsobject

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrIncomplete means the descriptor lacks the url, token or expiry needed to sign a playlist URL.
var ErrIncomplete = errors.New("incomplete playlist descriptor")

// Descriptor is the subset of the player globals needed to build a playlist URL.
type Descriptor struct {
	MasterPlaylist MasterPlaylist `json:"masterPlaylist"`
	CanPlayFHD     Flag           `json:"canPlayFHD"`
}

// MasterPlaylist is the value of window.masterPlaylist.
type MasterPlaylist struct {
	URL    string `json:"url"`
	Params Params `json:"params"`
}

// Params carries the playlist signature.
type Params struct {
	Token   Scalar `json:"token"`
	Expires Scalar `json:"expires"`
}

// Scalar is a string that also accepts JSON numbers and booleans.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}

	*s = Scalar(data)
	return nil
}

// Flag is a boolean that also accepts 0/1 and their string forms.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	switch raw {
	case "", "null":
		*f = false
		return nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("invalid flag %s", data)
	}
	*f = Flag(v)
	return nil
}

// Decode normalizes the script and parses the result.
func Decode(script string) (*Descriptor, error) {
	text, err := Normalize(script)
	if err != nil {
		return nil, err
	}

	return unmarshal([]byte(text))
}

func unmarshal(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &d, nil
}

// PlaylistURL signs the master playlist URL with the token and expiry, and requests the
// full-HD rendition when the player allows it. Mirrors of the player serialize the
// b=1 parameter as b:1; it is repaired before the signature is appended.
func (d *Descriptor) PlaylistURL() (string, error) {
	mp := d.MasterPlaylist

	switch {
	case mp.URL == "":
		return "", fmt.Errorf("%w: missing url", ErrIncomplete)
	case mp.Params.Token == "":
		return "", fmt.Errorf("%w: missing token", ErrIncomplete)
	case mp.Params.Expires == "":
		return "", fmt.Errorf("%w: missing expires", ErrIncomplete)
	}

	params := "token=" + url.QueryEscape(string(mp.Params.Token)) +
		"&expires=" + url.QueryEscape(string(mp.Params.Expires))

	link := mp.URL
	switch {
	case strings.Contains(link, "?b"):
		link = strings.Replace(link, "?b:1", "?b=1", 1) + "&" + params
	case strings.Contains(link, "?"):
		link += "&" + params
	default:
		link += "?" + params
	}

	if d.CanPlayFHD {
		link += "&h=1"
	}

	return link, nil
}
