// Package link extracts typed identifiers from the REST hyperlink
// collections the T8 API uses for listings.
//
// Listing endpoints return {"_items": [{"_links": {"self": "<url>"}}, ...]}.
// The trailing URL path segments encode either a single epoch-second
// timestamp (wave/spectrum/snapshot listings) or a machine/point/tag triple
// (processing-mode and parameter listings).
package link

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNotATimestamp = errors.New("link does not end in a timestamp")
	ErrMalformedLink = errors.New("malformed resource link")
)

// Item is one entry of a listing's _items array.
type Item struct {
	Links struct {
		Self string `json:"self"`
	} `json:"_links"`
	// Name is present on processing-mode listings only.
	Name string `json:"name,omitempty"`
}

// Listing is the wire shape of every collection endpoint.
type Listing struct {
	Items []Item `json:"_items"`
}

// Triple identifies a processing mode or parameter within the resource
// namespace.
type Triple struct {
	Machine string `json:"machine"`
	Point   string `json:"point"`
	Tag     string `json:"tag"`
}

// Less orders triples by (machine, point, tag).
func (t Triple) Less(o Triple) bool {
	if t.Machine != o.Machine {
		return t.Machine < o.Machine
	}
	if t.Point != o.Point {
		return t.Point < o.Point
	}
	return t.Tag < o.Tag
}

// Timestamp parses the final path segment of the item's self link as a
// base-10 epoch-second timestamp.
func Timestamp(it Item) (int64, error) {
	segs := segments(it.Links.Self)
	if len(segs) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedLink, it.Links.Self)
	}
	t, err := strconv.ParseInt(segs[len(segs)-1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotATimestamp, segs[len(segs)-1])
	}
	return t, nil
}

// TripleOf takes the last three non-empty path segments of the item's self
// link as a {machine, point, tag} triple.
func TripleOf(it Item) (Triple, error) {
	segs := segments(it.Links.Self)
	if len(segs) < 3 {
		return Triple{}, fmt.Errorf("%w: %q", ErrMalformedLink, it.Links.Self)
	}
	return Triple{
		Machine: segs[len(segs)-3],
		Point:   segs[len(segs)-2],
		Tag:     segs[len(segs)-1],
	}, nil
}

// LastSegment returns the final non-empty path segment verbatim. Config
// listings use it for opaque string IDs.
func LastSegment(it Item) (string, error) {
	segs := segments(it.Links.Self)
	if len(segs) == 0 {
		return "", fmt.Errorf("%w: %q", ErrMalformedLink, it.Links.Self)
	}
	return segs[len(segs)-1], nil
}

// ParseListing decodes a listing body, preserving server item order.
func ParseListing(body []byte) (Listing, error) {
	var l Listing
	if err := json.Unmarshal(body, &l); err != nil {
		return Listing{}, fmt.Errorf("%w: %v", ErrMalformedLink, err)
	}
	return l, nil
}

// segments splits a URL into non-empty path segments with trailing slashes
// trimmed. The parse never mutates the source link.
func segments(u string) []string {
	var out []string
	for _, s := range strings.Split(strings.Trim(u, "/"), "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
