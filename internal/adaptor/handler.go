package adaptor

import (
	"net/http"
	"strings"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/dto/request"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/usecase"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Car     *CarHandler
	Booking *BookingHandler
	Payment *PaymentHandler
	Promo   *PromoHandler
	License *LicenseHandler
	Admin   *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Car:     NewCarHandler(service.Car, log),
		Booking: NewBookingHandler(service.Booking, service.Admin, log),
		Payment: NewPaymentHandler(service.Payment, service.Admin, log),
		Promo:   NewPromoHandler(service.Promo, log),
		License: NewLicenseHandler(service.License, log),
		Admin:   NewAdminHandler(service.Admin, log),
	}
}

// handleServiceError maps service error messages to HTTP responses.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not available"),
		strings.Contains(errMsg, "already"):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "unauthorized"):
		log.Warn(operation+" failed - unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "expired"),
		strings.Contains(errMsg, "suspended"),
		strings.Contains(errMsg, "cannot"),
		strings.Contains(errMsg, "required"):
		log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// paginationFrom reads page/per_page query params with defaults.
func paginationFrom(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
