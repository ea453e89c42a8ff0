package handlers

import (
	"context"
	"time"

	"surge/internal/config"
	"surge/internal/geo"
	"surge/internal/graphql"
	"surge/internal/services"
)

// Operations holds every service an operation handler can reach. Register
// binds its methods to the router under their operation names.
type Operations struct {
	PriceLocks    *services.PriceLockService
	Notifications *services.NotificationService
	Surge         *services.SurgeService
	Heatmap       *services.HeatmapService
	Drivers       *services.DriverService
	Config        *config.Config
	Now           func() time.Time
}

// Register binds every query, mutation and subscription.
func (o *Operations) Register(r *graphql.Router) {
	if o.Now == nil {
		o.Now = time.Now
	}

	r.Handle(graphql.KindQuery, "GetCities", "cities", o.getCities)
	r.Handle(graphql.KindQuery, "GetSurgeData", "surgeData", o.getSurgeData)
	r.Handle(graphql.KindQuery, "GetHistoricalSurgeData", "historicalSurgeData", o.getHistoricalSurgeData)
	r.Handle(graphql.KindQuery, "GetPredictedSurgeData", "predictedSurgeData", o.getPredictedSurgeData)
	r.Handle(graphql.KindQuery, "GetDriverHeatmap", "driverHeatmap", o.getDriverHeatmap)
	r.Handle(graphql.KindQuery, "GetDemandZones", "demandZones", o.getDemandZones)
	r.Handle(graphql.KindQuery, "GetDriverPositioningIncentives", "driverPositioningIncentives", o.getIncentives)
	r.Handle(graphql.KindQuery, "GetUserPreferences", "userPreferences", o.getUserPreferences)
	r.Handle(graphql.KindQuery, "GetPriceLocks", "priceLocks", o.getPriceLocks)
	r.Handle(graphql.KindQuery, "GetSurgeEvents", "surgeEvents", o.getSurgeEvents)
	r.Handle(graphql.KindQuery, "GetNotifications", "notifications", o.getNotifications)

	r.Handle(graphql.KindMutation, "LockSurgePrice", "lockSurgePrice", o.lockSurgePrice)
	r.Handle(graphql.KindMutation, "UpdateNotificationPreferences", "updateNotificationPreferences", o.updateNotificationPreferences)
	r.Handle(graphql.KindMutation, "MarkNotificationAsRead", "markNotificationAsRead", o.markNotificationAsRead)
	r.Handle(graphql.KindMutation, "ClearAllNotifications", "clearAllNotifications", o.clearAllNotifications)

	r.Handle(graphql.KindSubscription, "notifications", "notification", o.pollNotification)
	r.Handle(graphql.KindSubscription, "surge-updates", "surgeUpdate", o.pollSurgeUpdate)
	r.Handle(graphql.KindSubscription, "driver-positions", "driverPositions", o.pollDriverPositions)
}

// demandArgs reads the (city, date, timeframe) triple shared by the
// generated map operations.
func (o *Operations) demandArgs(op graphql.Operation) (string, time.Time, string, error) {
	date, err := op.Variables.Time("date", o.Now())
	if err != nil {
		return "", time.Time{}, "", err
	}
	city := op.Variables.String("city", o.Config.Heatmap.DefaultCity)
	timeframe := op.Variables.String("timeframe", geo.TimeframeNextHour)
	return city, date, timeframe, nil
}

// Queries

func (o *Operations) getCities(ctx context.Context, op graphql.Operation) (interface{}, error) {
	return o.Heatmap.Cities(), nil
}

func (o *Operations) getSurgeData(ctx context.Context, op graphql.Operation) (interface{}, error) {
	return o.Surge.SurgeData(ctx, op.Variables.String("city", ""))
}

func (o *Operations) getHistoricalSurgeData(ctx context.Context, op graphql.Operation) (interface{}, error) {
	routeID := op.Variables.String("routeId", "")
	date, err := op.Variables.Time("date", time.Time{})
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		return o.Surge.HistoricalSurgeData(ctx, routeID, nil)
	}
	return o.Surge.HistoricalSurgeData(ctx, routeID, &date)
}

func (o *Operations) getPredictedSurgeData(ctx context.Context, op graphql.Operation) (interface{}, error) {
	city, date, timeframe, err := o.demandArgs(op)
	if err != nil {
		return nil, err
	}
	return o.Surge.PredictedSurgeData(city, date, timeframe), nil
}

func (o *Operations) getDriverHeatmap(ctx context.Context, op graphql.Operation) (interface{}, error) {
	city, date, timeframe, err := o.demandArgs(op)
	if err != nil {
		return nil, err
	}
	return o.Heatmap.Heatmap(city, date, timeframe), nil
}

func (o *Operations) getDemandZones(ctx context.Context, op graphql.Operation) (interface{}, error) {
	city, date, timeframe, err := o.demandArgs(op)
	if err != nil {
		return nil, err
	}
	limit, err := op.Variables.Int("limit", o.Config.Heatmap.DemandZoneLimit)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, graphql.Invalidf("limit", "limit must be positive")
	}
	return o.Heatmap.DemandZones(city, date, timeframe, limit), nil
}

func (o *Operations) getIncentives(ctx context.Context, op graphql.Operation) (interface{}, error) {
	date, err := op.Variables.Time("date", o.Now())
	if err != nil {
		return nil, err
	}
	city := op.Variables.String("city", "")
	timeframe := op.Variables.String("timeframe", geo.TimeframeNextHour)
	return o.Heatmap.Incentives(ctx, city, date, timeframe)
}

func (o *Operations) getUserPreferences(ctx context.Context, op graphql.Operation) (interface{}, error) {
	return o.Notifications.GetPreferences(ctx)
}

func (o *Operations) getPriceLocks(ctx context.Context, op graphql.Operation) (interface{}, error) {
	return o.PriceLocks.ListPriceLocks(ctx)
}

func (o *Operations) getSurgeEvents(ctx context.Context, op graphql.Operation) (interface{}, error) {
	return o.Surge.SurgeEvents(ctx, op.Variables.String("city", ""))
}

func (o *Operations) getNotifications(ctx context.Context, op graphql.Operation) (interface{}, error) {
	return o.Notifications.ListNotifications(ctx)
}

// Mutations

func (o *Operations) lockSurgePrice(ctx context.Context, op graphql.Operation) (interface{}, error) {
	routeID := op.Variables.String("routeId", o.Config.Pricing.DefaultRouteID)
	multiplier, err := op.Variables.Float("multiplier", o.Config.Pricing.DefaultMultiplier)
	if err != nil {
		return nil, err
	}
	if multiplier <= 0 {
		return nil, graphql.Invalidf("multiplier", "multiplier must be greater than zero")
	}
	return o.PriceLocks.LockPrice(ctx, routeID, multiplier)
}

func (o *Operations) updateNotificationPreferences(ctx context.Context, op graphql.Operation) (interface{}, error) {
	patch, err := op.Variables.Object("preferences")
	if err != nil {
		return nil, err
	}
	return o.Notifications.UpdatePreferences(ctx, patch)
}

func (o *Operations) markNotificationAsRead(ctx context.Context, op graphql.Operation) (interface{}, error) {
	return o.Notifications.MarkAsRead(ctx, op.Variables.String("id", ""))
}

func (o *Operations) clearAllNotifications(ctx context.Context, op graphql.Operation) (interface{}, error) {
	return o.Notifications.ClearAll(ctx)
}

// Subscriptions

func (o *Operations) pollNotification(ctx context.Context, op graphql.Operation) (interface{}, error) {
	return o.Notifications.Poll(ctx)
}

func (o *Operations) pollSurgeUpdate(ctx context.Context, op graphql.Operation) (interface{}, error) {
	return o.Surge.Update(op.Variables.String("routeId", o.Config.Pricing.DefaultRouteID)), nil
}

func (o *Operations) pollDriverPositions(ctx context.Context, op graphql.Operation) (interface{}, error) {
	return o.Drivers.Positions(ctx)
}
