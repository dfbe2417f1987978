package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"order-notification-service/internal/models"
)

// InventoryRepository reads the product catalog from the remote listing service.
type InventoryRepository interface {
	// FetchAll returns the full current catalog. The result can be
	// arbitrarily large; no pagination contract is implied.
	FetchAll(ctx context.Context) ([]models.Inventory, error)
}

type inventoryRepository struct {
	client       LambdaAPI
	functionName string
}

// NewInventoryRepository creates a repository backed by the listing
// service's get-inventories function.
func NewInventoryRepository(client LambdaAPI, functionName string) InventoryRepository {
	return &inventoryRepository{client: client, functionName: functionName}
}

func (r *inventoryRepository) FetchAll(ctx context.Context) ([]models.Inventory, error) {
	out, err := r.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(r.functionName),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        []byte("{}"),
	})
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", r.functionName, err)
	}
	if len(out.Payload) == 0 {
		return nil, fmt.Errorf("empty response from %s", r.functionName)
	}

	var resp invocationResponse
	if err := json.Unmarshal(out.Payload, &resp); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", r.functionName, err)
	}

	var inventories []models.Inventory
	if err := json.Unmarshal([]byte(resp.Body), &inventories); err != nil {
		return nil, fmt.Errorf("decode inventories: %w", err)
	}
	return inventories, nil
}
