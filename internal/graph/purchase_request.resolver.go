package graph

import (
	"context"
	"strings"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/purchaserequest"
)

func toGraphQLPurchaseRequest(pr *purchaserequest.Request) *model.PurchaseRequest {
	return &model.PurchaseRequest{
		ID:                   pr.ID,
		ProductID:            pr.ProductID,
		ProductName:          pr.ProductName,
		RequestedQuantity:    pr.RequestedQuantity,
		CurrentQuantity:      pr.CurrentQuantity,
		Status:               model.PurchaseRequestStatus(strings.ToUpper(string(pr.Status))),
		Notes:                pr.Notes,
		RequestedAt:          pr.RequestedAt,
		ProcessedAt:          pr.ProcessedAt,
		ExpectedDeliveryDate: pr.ExpectedDeliveryDate,
	}
}

func (r *queryResolver) PurchaseRequests(ctx context.Context) ([]*model.PurchaseRequest, error) {
	st, err := r.ownerStore(ctx)
	if err != nil {
		return nil, err
	}

	list, err := r.PurchaseRequestSvc.ListByStore(ctx, st.ID)
	if err != nil {
		return nil, err
	}

	out := make([]*model.PurchaseRequest, 0, len(list))
	for i := range list {
		out = append(out, toGraphQLPurchaseRequest(&list[i]))
	}
	return out, nil
}

func (r *mutationResolver) CreatePurchaseRequest(ctx context.Context, input model.CreatePurchaseRequestInput) (*model.PurchaseRequest, error) {
	st, err := r.ownerStore(ctx)
	if err != nil {
		return nil, err
	}

	pr, err := r.PurchaseRequestSvc.Create(ctx, st.ID, purchaserequest.CreateInput{
		ProductID:            input.ProductID,
		RequestedQuantity:    input.RequestedQuantity,
		Notes:                input.Notes,
		ExpectedDeliveryDate: input.ExpectedDeliveryDate,
	})
	if err != nil {
		return nil, err
	}
	return toGraphQLPurchaseRequest(pr), nil
}

// UpdatePurchaseRequest edits a request or moves it along
// pending -> approved|rejected and approved -> completed.
func (r *mutationResolver) UpdatePurchaseRequest(ctx context.Context, id string, input model.UpdatePurchaseRequestInput) (*model.PurchaseRequest, error) {
	st, err := r.ownerStore(ctx)
	if err != nil {
		return nil, err
	}

	in := purchaserequest.UpdateInput{
		RequestedQuantity:    input.RequestedQuantity,
		Notes:                input.Notes,
		ExpectedDeliveryDate: input.ExpectedDeliveryDate,
	}
	if input.Status != nil {
		status := purchaserequest.Status(strings.ToLower(string(*input.Status)))
		in.Status = &status
	}

	pr, err := r.PurchaseRequestSvc.Update(ctx, st.ID, id, in)
	if err != nil {
		return nil, err
	}
	return toGraphQLPurchaseRequest(pr), nil
}

func (r *mutationResolver) DeletePurchaseRequest(ctx context.Context, id string) (bool, error) {
	st, err := r.ownerStore(ctx)
	if err != nil {
		return false, err
	}

	if err := r.PurchaseRequestSvc.Delete(ctx, st.ID, id); err != nil {
		return false, err
	}
	return true, nil
}
