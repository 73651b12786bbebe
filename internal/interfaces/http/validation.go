package http

import (
	"regexp"

	"github.com/jhoicas/admin-panel-api/internal/application/dto"
	"github.com/jhoicas/admin-panel-api/internal/domain"
)

var emailRx = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// validateLogin reglas del formulario de login: email con formato y password
// de al menos 6 caracteres.
func validateLogin(in dto.LoginRequest) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if in.Email == "" {
		errs["email"] = "el email es requerido"
	} else if !emailRx.MatchString(in.Email) {
		errs["email"] = "el email no es válido"
	}
	if in.Password == "" {
		errs["password"] = "la contraseña es requerida"
	} else if len(in.Password) < 6 {
		errs["password"] = "la contraseña debe tener al menos 6 caracteres"
	}
	return errs
}

// validateRegister reglas del registro: nombre, email con formato y contraseña
// fuerte (≥8, mayúscula, minúscula y dígito) confirmada.
func validateRegister(in dto.RegisterRequest) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if in.Name == "" {
		errs["name"] = "el nombre es requerido"
	}
	if in.Email == "" {
		errs["email"] = "el email es requerido"
	} else if !emailRx.MatchString(in.Email) {
		errs["email"] = "el email no es válido"
	}
	if msg := passwordStrength(in.Password); msg != "" {
		errs["password"] = msg
	}
	if in.ConfirmPassword == "" {
		errs["confirm_password"] = "confirma la contraseña"
	} else if in.Password != in.ConfirmPassword {
		errs["confirm_password"] = "las contraseñas no coinciden"
	}
	return errs
}

// validateChangePassword reglas del cambio de credencial (la verificación de
// la credencial actual corre en el handler contra la sesión).
func validateChangePassword(in dto.ChangePasswordRequest) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if in.CurrentPassword == "" {
		errs["current_password"] = "la contraseña actual es requerida"
	}
	if msg := passwordStrength(in.NewPassword); msg != "" {
		errs["new_password"] = msg
	}
	if in.ConfirmPassword != in.NewPassword {
		errs["confirm_password"] = "las contraseñas no coinciden"
	}
	return errs
}

func passwordStrength(pw string) string {
	if pw == "" {
		return "la contraseña es requerida"
	}
	if len(pw) < 8 {
		return "la contraseña debe tener al menos 8 caracteres"
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	switch {
	case !upper:
		return "la contraseña debe incluir una mayúscula"
	case !lower:
		return "la contraseña debe incluir una minúscula"
	case !digit:
		return "la contraseña debe incluir un número"
	}
	return ""
}

// validateSaveUser reglas del formulario de alta/edición de usuario.
// En edición (partial=true) los campos vacíos significan "sin cambio".
func validateSaveUser(in dto.SaveUserRequest, partial bool) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if !partial && in.Name == "" {
		errs["name"] = "el nombre es requerido"
	}
	if !partial && in.Email == "" {
		errs["email"] = "el email es requerido"
	}
	if in.Email != "" && !emailRx.MatchString(in.Email) {
		errs["email"] = "el email no es válido"
	}
	return errs
}
