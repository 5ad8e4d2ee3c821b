package controllers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"loadboard/internal/chathub"
	"loadboard/internal/events"
	"loadboard/internal/metrics"
	"loadboard/internal/middleware"
	"loadboard/internal/storage"
)

// Handler carries the shared clients every endpoint needs. It is built once
// in main and its methods are bound to routes.
type Handler struct {
	DB             *gorm.DB
	Files          storage.Uploader
	Auth           *middleware.JWT
	Hub            *chathub.Hub
	Events         events.Publisher
	Metrics        *metrics.Metrics
	ReceiptBaseURL string
}

// Health reports whether the database answers.
func (h *Handler) Health(c *gin.Context) {
	sqlDB, err := h.DB.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logrus.WithError(err).Warn("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// publish emits a domain event; failures never reach the caller.
func (h *Handler) publish(c *gin.Context, topic string, key interface{}, data interface{}) {
	if err := h.Events.Publish(c.Request.Context(), topic, fmt.Sprint(key), data); err != nil {
		logrus.WithError(err).WithField("topic", topic).Warn("event publish failed")
	}
}

// isUniqueViolation matches Postgres 23505 from lib/pq and GORM's translated
// duplicate-key error.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// looseNumber accepts 12, "12", "" and null from browser clients that send
// form values as strings.
type looseNumber string

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = ""
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	if s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("invalid number %q", s)
		}
	}
	*n = looseNumber(s)
	return nil
}

func (n looseNumber) Float() float64 {
	f, _ := strconv.ParseFloat(string(n), 64)
	return f
}

// maxAmount is the first value a NUMERIC(12, 2) column cannot hold.
const maxAmount = 1e10

// Amount parses a money value for NUMERIC(12, 2) columns. Empty yields zero.
func (n looseNumber) Amount() (float64, error) {
	f := n.Float()
	if math.Abs(f) >= maxAmount {
		return 0, fmt.Errorf("amount %q out of range", string(n))
	}
	return f, nil
}

// Int parses a whole number that fits an INTEGER column. Empty yields zero.
func (n looseNumber) Int() (int, error) {
	if n == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(string(n), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", string(n))
	}
	return int(v), nil
}

// Uint parses an identifier. Empty yields zero.
func (n looseNumber) Uint() (uint, error) {
	if n == "" {
		return 0, nil
	}
	return parseID(string(n))
}

func parseID(raw string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(v), nil
}
