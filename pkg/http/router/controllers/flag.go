package controllers

import (
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/flagencoder/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type flagAPI struct {
	flagService FlagService
	log         *zap.Logger
	validate    *validator.Validate
	trans       ut.Translator
}

func New(flagService FlagService, log *zap.Logger) *flagAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &flagAPI{
		flagService: flagService,
		log:         log,
		validate:    validate,
		trans:       trans,
	}
}

func (api *flagAPI) Routes(group *helper.RouteGroup) {
	group.GET("/profiles", api.profiles)
	group.POST("/encode", api.encode)
	group.POST("/decode", api.decode)
	group.POST("/curvature", api.curvature)
}

func (api *flagAPI) profiles(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewProfilesResponse(api.flagService.Profiles())},
		headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *flagAPI) encode(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request encodeRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.flagService.Encode(request.Profile, request.Tags)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewEncodeResponse(res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *flagAPI) decode(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request decodeRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	decoded, err := api.flagService.Decode(request.Profile, *request.Flags)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewDecodedFlagsResponse(decoded)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *flagAPI) curvature(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request curvatureRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validateRequest(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	res, err := api.flagService.Curvature(request.Profile, request.Tags, request.Polyline)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewEncodeResponse(res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
