// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rotate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

var validate = validator.New()

// validateRequest reports the first invalid field of req as InvalidInput.
func validateRequest(req Request) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		subject := fmt.Sprint(fe.Value())
		switch fe.Field() {
		case "Degrees":
			return types.Errorf(types.KindInvalidInput, subject,
				"rotation must be 90, 180 or 270 degrees, got %s", subject)
		case "Direction":
			return types.Errorf(types.KindInvalidInput, subject,
				"rotation direction must be cw or ccw, got %q", subject)
		}
	}
	return &types.OperationError{Kind: types.KindInvalidInput, Msg: "invalid rotation request", Err: err}
}
