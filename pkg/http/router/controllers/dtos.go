package controllers

import "github.com/lintang-b-s/flagencoder/pkg/http/usecases"

type encodeRequest struct {
	Profile string            `json:"profile" validate:"required"`
	Tags    map[string]string `json:"tags" validate:"required,min=1"`
}

type decodeRequest struct {
	Profile string  `json:"profile" validate:"required"`
	Flags   *uint64 `json:"flags" validate:"required"`
}

type curvatureRequest struct {
	Profile  string            `json:"profile" validate:"required"`
	Tags     map[string]string `json:"tags" validate:"required,min=1"`
	Polyline string            `json:"polyline" validate:"required"`
}

type profileResponse struct {
	Name     string   `json:"name"`
	Version  int      `json:"version"`
	Features []string `json:"features"`
	FirstBit int      `json:"first_bit"`
	NextBit  int      `json:"next_bit"`
}

func NewProfilesResponse(infos []usecases.ProfileInfo) []profileResponse {
	profiles := make([]profileResponse, len(infos))
	for i, info := range infos {
		profiles[i] = profileResponse{
			Name:     info.Name,
			Version:  info.Version,
			Features: info.Features,
			FirstBit: info.FirstBit,
			NextBit:  info.NextBit,
		}
	}
	return profiles
}

type decodedFlagsResponse struct {
	// decimal string, javascript clients lose precision above 2^53
	Flags        string   `json:"flags"`
	Forward      bool     `json:"forward"`
	Backward     bool     `json:"backward"`
	Roundabout   bool     `json:"roundabout"`
	Speed        float64  `json:"speed"`
	ReverseSpeed float64  `json:"reverse_speed"`
	Priority     *float64 `json:"priority,omitempty"`
	PriorityCode string   `json:"priority_code,omitempty"`
	Curvature    *float64 `json:"curvature,omitempty"`
}

func NewDecodedFlagsResponse(d usecases.DecodedFlags) decodedFlagsResponse {
	return decodedFlagsResponse{
		Flags:        formatFlags(d.Flags),
		Forward:      d.Forward,
		Backward:     d.Backward,
		Roundabout:   d.Roundabout,
		Speed:        d.Speed,
		ReverseSpeed: d.ReverseSpeed,
		Priority:     d.Priority,
		PriorityCode: d.PriorityCode,
		Curvature:    d.Curvature,
	}
}

type encodeResponse struct {
	Acceptance string               `json:"acceptance"`
	Highway    string               `json:"highway,omitempty"`
	Decoded    decodedFlagsResponse `json:"decoded"`
	Distance   float64              `json:"distance,omitempty"`
	Beeline    float64              `json:"beeline,omitempty"`
}

func NewEncodeResponse(res usecases.EncodeResult) encodeResponse {
	return encodeResponse{
		Acceptance: res.Acceptance,
		Highway:    res.Highway,
		Decoded:    NewDecodedFlagsResponse(res.Decoded),
		Distance:   res.Distance,
		Beeline:    res.Beeline,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
