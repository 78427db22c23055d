package application

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-gavel/internal/domain"
)

// registerCustomValidators registers domain-specific validation functions
// with v beyond what struct tags alone can express: semantic version
// strings and ValueKind names.
func registerCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("semver", validateSemver); err != nil {
		return fmt.Errorf("failed to register semver validator: %w", err)
	}
	if err := v.RegisterValidation("valuekind", validateValueKind); err != nil {
		return fmt.Errorf("failed to register valuekind validator: %w", err)
	}
	return nil
}

// validateSemver validates that a string follows X.Y.Z semantic versioning.
func validateSemver(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	var major, minor, patch int
	n, err := fmt.Sscanf(value, "%d.%d.%d", &major, &minor, &patch)
	return err == nil && n == 3
}

// validateValueKind validates that a string names one of domain's ValueKind
// variants, matching ValueKind.String().
func validateValueKind(fl validator.FieldLevel) bool {
	_, ok := valueKindByName(fl.Field().String())
	return ok
}

// valueKindByName resolves a ValueKind from its String() form, used both by
// the semantic validator and by the compiler when building domain.Value
// constants from ConstSpec.
func valueKindByName(name string) (domain.ValueKind, bool) {
	kinds := []domain.ValueKind{
		domain.KindTrigger,
		domain.KindToggle,
		domain.KindCount,
		domain.KindConstrainedMagnitude,
		domain.KindUnconstrainedMagnitude,
		domain.KindColor,
		domain.KindText,
		domain.KindBitmap1D,
		domain.KindBitmap2D,
		domain.KindShader1D,
		domain.KindShader2D,
		domain.KindShader3D,
	}
	for _, k := range kinds {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}
