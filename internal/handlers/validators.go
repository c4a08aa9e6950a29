package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"villa_backend/internal/models"
	"villa_backend/pkg/utils"
)

var registerOnce sync.Once

// RegisterValidators adds the domain enum checks to gin's validator engine.
// Request DTOs refer to them as `reservation_status` and `expense_category`.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := v.RegisterValidation("reservation_status", validReservationStatus); err != nil {
			utils.LogError(err, "RegisterValidators: reservation_status")
		}
		if err := v.RegisterValidation("expense_category", validExpenseCategory); err != nil {
			utils.LogError(err, "RegisterValidators: expense_category")
		}
	})
}

func validReservationStatus(fl validator.FieldLevel) bool {
	_, err := models.ParseReservationStatus(fl.Field().String())
	return err == nil
}

func validExpenseCategory(fl validator.FieldLevel) bool {
	_, err := models.ParseExpenseCategory(fl.Field().String())
	return err == nil
}
