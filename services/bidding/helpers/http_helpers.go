package helpers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"peer-bidding/internal/biddingerrors"
	model "peer-bidding/internal/models"
	"peer-bidding/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrInvalidPrice):
		return http.StatusBadRequest, "invalid price"
	case errors.Is(err, biddingerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, biddingerrors.ErrInvalidTopic):
		return http.StatusBadRequest, "invalid room topic"
	case errors.Is(err, biddingerrors.ErrItemAlreadyExists):
		return http.StatusConflict, "item already listed"
	case errors.Is(err, biddingerrors.ErrNotOwner):
		return http.StatusForbidden, "not the owner of this item"
	case errors.Is(err, biddingerrors.ErrSelfBidNotAllowed):
		return http.StatusForbidden, "cannot bid on your own item"
	case errors.Is(err, biddingerrors.ErrItemNotFound):
		return http.StatusNotFound, "item not found"
	case errors.Is(err, biddingerrors.ErrBidClosed):
		return http.StatusConflict, "bid is closed"
	case errors.Is(err, biddingerrors.ErrPriceTooLow):
		return http.StatusConflict, "price too low"
	case errors.Is(err, biddingerrors.ErrPeerNotFound):
		return http.StatusNotFound, "seller is not connected"
	case errors.Is(err, biddingerrors.ErrNotJoined):
		return http.StatusConflict, "join a room first"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, "request timed out"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// ToBidResponse converts a record into its API form
func ToBidResponse(record model.BidRecord) BidResponse {
	return BidResponse{
		ItemID:         record.ItemID,
		OriginalOwner:  record.OriginalOwner,
		PotentialOwner: record.PotentialOwner,
		Price:          record.Price.String(),
		Status:         string(record.Status),
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
