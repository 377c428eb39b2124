package handlers

import (
	"net/url"
	"time"

	apperrors "notedeck/pkg/errors"
	"notedeck/pkg/models"
)

// Query string parameters stand in for typed values, so every field gets an
// explicit parse-and-validate function producing either a typed value or a
// validation error. An absent parameter always parses to nil.

func parseBoolParam(q url.Values, name string) (*bool, *apperrors.AppError) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	switch raw {
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	}
	return nil, apperrors.Newf(apperrors.ErrTypeValidation, "PARAM_INVALID",
		"invalid value %q for parameter %q, must be \"true\" or \"false\"", raw, name)
}

func parseTimeParam(q url.Values, name string) (*time.Time, *apperrors.AppError) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrTypeValidation, "PARAM_INVALID",
			"invalid value %q for parameter %q, must be an RFC 3339 timestamp", raw, name)
	}
	return &t, nil
}

func parseTypeParam(q url.Values, name string) (*models.TodoType, *apperrors.AppError) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	t := models.TodoType(raw)
	if !t.IsValid() {
		return nil, apperrors.Newf(apperrors.ErrTypeValidation, "PARAM_INVALID",
			"invalid value %q for parameter %q", raw, name)
	}
	return &t, nil
}

func parsePriorityParam(q url.Values, name string) (*models.Priority, *apperrors.AppError) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	p := models.Priority(raw)
	if !p.IsValid() {
		return nil, apperrors.Newf(apperrors.ErrTypeValidation, "PARAM_INVALID",
			"invalid value %q for parameter %q", raw, name)
	}
	return &p, nil
}
