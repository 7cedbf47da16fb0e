package backend

import (
	"context"
	"net/url"

	"bookingdesk/internal/domain"
)

func (c *Client) BookingTypes(ctx context.Context) ([]domain.BookingType, error) {
	var items []namedDTO
	if err := c.get(ctx, "/booking-types", nil, &items); err != nil {
		return nil, err
	}
	out := make([]domain.BookingType, 0, len(items))
	for _, it := range items {
		out = append(out, domain.BookingType{ID: it.ID, Name: it.Name})
	}
	return out, nil
}

func (c *Client) VehicleTypes(ctx context.Context) ([]domain.VehicleType, error) {
	var items []namedDTO
	if err := c.get(ctx, "/vehicle-types", nil, &items); err != nil {
		return nil, err
	}
	out := make([]domain.VehicleType, 0, len(items))
	for _, it := range items {
		out = append(out, domain.VehicleType{ID: it.ID, Name: it.Name})
	}
	return out, nil
}

func (c *Client) VehicleMakes(ctx context.Context) ([]domain.VehicleMake, error) {
	var items []namedDTO
	if err := c.get(ctx, "/vehicle-makes", nil, &items); err != nil {
		return nil, err
	}
	out := make([]domain.VehicleMake, 0, len(items))
	for _, it := range items {
		out = append(out, domain.VehicleMake{ID: it.ID, Name: it.Name})
	}
	return out, nil
}

func (c *Client) VehicleModels(ctx context.Context, makeID string) ([]domain.VehicleModel, error) {
	var items []namedDTO
	if err := c.get(ctx, "/vehicle-makes/"+url.PathEscape(makeID)+"/models", nil, &items); err != nil {
		return nil, err
	}
	out := make([]domain.VehicleModel, 0, len(items))
	for _, it := range items {
		makeRef := it.MakeID
		if makeRef == "" {
			makeRef = makeID
		}
		out = append(out, domain.VehicleModel{ID: it.ID, MakeID: makeRef, Name: it.Name})
	}
	return out, nil
}
