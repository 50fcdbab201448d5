package controllers

import "github.com/lintang-b-s/flagencoder/pkg/http/usecases"

type FlagService interface {
	Profiles() []usecases.ProfileInfo
	Encode(profile string, tags map[string]string) (usecases.EncodeResult, error)
	Decode(profile string, flags uint64) (usecases.DecodedFlags, error)
	Curvature(profile string, tags map[string]string, polyline string) (usecases.EncodeResult, error)
}
