package httpadapter

import (
	"context"
	"log/slog"

	"kasaba/contexts/town-guide/duty-rotation/application"
	"kasaba/contexts/town-guide/duty-rotation/domain/entities"
	"kasaba/contexts/town-guide/duty-rotation/ports"
	httptransport "kasaba/contexts/town-guide/duty-rotation/transport/http"
)

type Handler struct {
	Duty   application.Service
	Logger *slog.Logger
}

func (h Handler) RegisterPharmacyHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.RegisterPharmacyRequest,
) (httptransport.PharmacyResponse, error) {
	pharmacy, err := h.Duty.RegisterPharmacy(ctx, actor, req.Name, req.Phone, req.Address)
	if err != nil {
		return httptransport.PharmacyResponse{}, err
	}
	return toPharmacyResponse(pharmacy), nil
}

func (h Handler) ListPharmaciesHandler(ctx context.Context) (httptransport.PharmacyListResponse, error) {
	pharmacies, err := h.Duty.ListPharmacies(ctx)
	if err != nil {
		return httptransport.PharmacyListResponse{}, err
	}
	resp := httptransport.PharmacyListResponse{
		Items: make([]httptransport.PharmacyResponse, 0, len(pharmacies)),
	}
	for _, pharmacy := range pharmacies {
		resp.Items = append(resp.Items, toPharmacyResponse(pharmacy))
	}
	return resp, nil
}

func (h Handler) AssignDutyHandler(
	ctx context.Context,
	actor ports.Actor,
	req httptransport.AssignDutyRequest,
) (httptransport.DutyResponse, error) {
	duty, err := h.Duty.AssignDuty(ctx, actor, req.Date, req.PharmacyID)
	if err != nil {
		return httptransport.DutyResponse{}, err
	}
	pharmacy, err := h.Duty.Pharmacies.GetPharmacy(ctx, duty.PharmacyID)
	if err != nil {
		return httptransport.DutyResponse{}, err
	}
	return httptransport.DutyResponse{
		Date:     duty.Date,
		Pharmacy: toPharmacyResponse(pharmacy),
	}, nil
}

func (h Handler) DutyPharmacyHandler(ctx context.Context, date string) (httptransport.DutyResponse, error) {
	pharmacy, duty, err := h.Duty.DutyPharmacy(ctx, date)
	if err != nil {
		return httptransport.DutyResponse{}, err
	}
	return httptransport.DutyResponse{
		Date:     duty.Date,
		Pharmacy: toPharmacyResponse(pharmacy),
	}, nil
}

func toPharmacyResponse(pharmacy entities.Pharmacy) httptransport.PharmacyResponse {
	return httptransport.PharmacyResponse{
		PharmacyID: pharmacy.PharmacyID,
		Name:       pharmacy.Name,
		Phone:      pharmacy.Phone,
		Address:    pharmacy.Address,
		CreatedAt:  pharmacy.CreatedAt,
	}
}
