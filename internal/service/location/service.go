package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/geoattend/geoattend-backend-go/internal/domain/location"
	"github.com/geoattend/geoattend-backend-go/internal/domain/notification"
	"github.com/geoattend/geoattend-backend-go/internal/domain/user"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/database"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/geo"
	"github.com/geoattend/geoattend-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type LocationServiceImpl struct {
	db *database.DB
	location.PinRepository
	location.HistoryRepository
	user.UserRepository
	notificationSvc notification.Service
}

func NewLocationService(
	db *database.DB,
	pinRepository location.PinRepository,
	historyRepository location.HistoryRepository,
	userRepository user.UserRepository,
	notificationSvc notification.Service,
) location.LocationService {
	return &LocationServiceImpl{
		db:                db,
		PinRepository:     pinRepository,
		HistoryRepository: historyRepository,
		UserRepository:    userRepository,
		notificationSvc:   notificationSvc,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// userLocation resolves the user's IANA timezone, falling back to UTC.
func (s *LocationServiceImpl) userLocation(ctx context.Context, userID string) *time.Location {
	userData, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return time.UTC
	}
	loc, err := time.LoadLocation(userData.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func mapPinToResponse(pin location.Pin) location.PinResponse {
	return location.PinResponse{
		ID:           pin.ID,
		Latitude:     pin.Coordinate.Latitude,
		Longitude:    pin.Coordinate.Longitude,
		RadiusMeters: pin.RadiusMeters,
		CreatedAt:    pin.CreatedAt.Format(time.RFC3339),
	}
}

// PinLocation implements location.LocationService.
func (s *LocationServiceImpl) PinLocation(ctx context.Context, req location.PinLocationRequest) (location.PinResponse, error) {
	if err := req.Validate(); err != nil {
		return location.PinResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return location.PinResponse{}, err
	}

	radius := float64(location.DefaultRadiusMeters)
	if req.RadiusMeters != nil {
		radius = *req.RadiusMeters
	}

	pin, err := s.PinRepository.Create(ctx, location.Pin{
		UserID:       userID,
		Coordinate:   geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude},
		RadiusMeters: radius,
	})
	if err != nil {
		return location.PinResponse{}, fmt.Errorf("failed to create pin: %w", err)
	}

	return mapPinToResponse(pin), nil
}

// GetActivePin implements location.LocationService.
func (s *LocationServiceImpl) GetActivePin(ctx context.Context) (location.PinResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return location.PinResponse{}, err
	}

	pin, err := s.PinRepository.GetActiveByUserID(ctx, userID)
	if err != nil {
		return location.PinResponse{}, err
	}

	return mapPinToResponse(pin), nil
}

// TrackSample implements location.LocationService. One sample runs the full
// pipeline: classify against the active pin, detect a boundary crossing,
// accumulate daily totals and queue zone notifications.
func (s *LocationServiceImpl) TrackSample(ctx context.Context, req location.TrackRequest) (location.TrackResponse, error) {
	if err := req.Validate(); err != nil {
		return location.TrackResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return location.TrackResponse{}, err
	}

	pin, err := s.PinRepository.GetActiveByUserID(ctx, userID)
	if err != nil {
		return location.TrackResponse{}, err
	}

	loc := s.userLocation(ctx, userID)

	observedAt := time.Now().In(loc)
	if req.ObservedAt != nil && *req.ObservedAt != "" {
		parsed, err := time.Parse(time.RFC3339, *req.ObservedAt)
		if err != nil {
			return location.TrackResponse{}, fmt.Errorf("failed to parse observed_at: %w", err)
		}
		observedAt = parsed.In(loc)
	}

	sample := location.Sample{
		UserID:     userID,
		Coordinate: geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude},
		ObservedAt: observedAt,
	}

	status := location.ClassifyZone(sample.Coordinate, pin)

	day := location.DayOf(observedAt, loc)

	// Read-modify-write under a row lock: two samples for the same user
	// arriving together must not compute from the same previous totals.
	var totals location.DailyTotals
	var transition location.Transition
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		current, err := s.HistoryRepository.GetByUserAndDayForUpdate(txCtx, userID, day)
		if err != nil {
			if !errors.Is(err, location.ErrHistoryNotFound) {
				return fmt.Errorf("failed to get daily totals: %w", err)
			}
			current = location.DailyTotals{UserID: userID, Day: day}
		}

		transition = location.DetectTransition(current.LastInZone, status.InZone)

		current = location.Accumulate(current, current.LastSampleAt, sample, status.InZone)
		current.PinID = pin.ID

		totals, err = s.HistoryRepository.Upsert(txCtx, current)
		if err != nil {
			return fmt.Errorf("failed to upsert daily totals: %w", err)
		}
		return nil
	})
	if err != nil {
		return location.TrackResponse{}, err
	}

	s.queueZoneNotifications(ctx, userID, transition, status)

	return location.TrackResponse{
		InZone:         status.InZone,
		DistanceMeters: status.DistanceMeters,
		Entered:        transition.Entered,
		Exited:         transition.Exited,
		InsideSeconds:  totals.InsideSeconds,
		OutsideSeconds: totals.OutsideSeconds,
		Percentage:     location.PercentageInZone(totals),
	}, nil
}

func (s *LocationServiceImpl) queueZoneNotifications(ctx context.Context, userID string, transition location.Transition, status location.ZoneStatus) {
	if s.notificationSvc == nil {
		return
	}

	switch {
	case transition.Entered:
		_ = s.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
			RecipientID: userID,
			Type:        notification.TypeZoneEnter,
			Title:       "Entered Work Zone",
			Message:     "You entered your pinned work zone",
			Data: map[string]interface{}{
				"distance_meters": status.DistanceMeters,
			},
		})
	case transition.Exited:
		_ = s.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
			RecipientID: userID,
			Type:        notification.TypeZoneExit,
			Title:       "Left Work Zone",
			Message:     "You left your pinned work zone",
			Data: map[string]interface{}{
				"distance_meters": status.DistanceMeters,
			},
		})
	}
}

// GetHistory implements location.LocationService.
func (s *LocationServiceImpl) GetHistory(ctx context.Context, filter location.HistoryFilter) (location.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return location.HistoryResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return location.HistoryResponse{}, err
	}

	loc := s.userLocation(ctx, userID)
	today := location.DayOf(time.Now().In(loc), loc)

	var from time.Time
	switch filter.Filter {
	case "week":
		from = today.AddDate(0, 0, -6)
	case "month":
		from = today.AddDate(0, -1, 0).AddDate(0, 0, 1)
	default:
		from = today
	}

	rows, err := s.HistoryRepository.ListByUserBetween(ctx, userID, from, today)
	if err != nil {
		return location.HistoryResponse{}, fmt.Errorf("failed to list daily totals: %w", err)
	}

	response := location.HistoryResponse{
		Activities: make([]location.HistoryEntry, 0, len(rows)),
		Chart: location.HistoryChart{
			Labels: make([]string, 0, len(rows)),
			Data:   make([]int, 0, len(rows)),
		},
	}

	for _, totals := range rows {
		percentage := location.PercentageInZone(totals)

		status := "OUT_ZONE"
		if totals.LastInZone != nil && *totals.LastInZone {
			status = "IN_ZONE"
		}

		date := totals.Day.Format("2006-01-02")
		response.Activities = append(response.Activities, location.HistoryEntry{
			ID:             totals.ID,
			Date:           date,
			InsideSeconds:  totals.InsideSeconds,
			OutsideSeconds: totals.OutsideSeconds,
			Percentage:     percentage,
			Status:         status,
		})
		response.Chart.Labels = append(response.Chart.Labels, date)
		response.Chart.Data = append(response.Chart.Data, percentage)
	}

	return response, nil
}

// GetTodaySummary implements location.LocationService.
func (s *LocationServiceImpl) GetTodaySummary(ctx context.Context) (*location.DailySummary, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	loc := s.userLocation(ctx, userID)
	today := location.DayOf(time.Now().In(loc), loc)

	totals, err := s.HistoryRepository.GetByUserAndDay(ctx, userID, today)
	if err != nil {
		if errors.Is(err, location.ErrHistoryNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get daily totals: %w", err)
	}

	return &location.DailySummary{
		InsideSeconds:  totals.InsideSeconds,
		OutsideSeconds: totals.OutsideSeconds,
		Percentage:     location.PercentageInZone(totals),
	}, nil
}
