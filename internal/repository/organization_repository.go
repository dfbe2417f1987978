package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"order-notification-service/internal/models"
)

// ErrOrganizationNotFound is returned when the account service has no
// organization for the requested id. The email cannot be addressed without
// the organization, so callers must fail the record.
var ErrOrganizationNotFound = errors.New("organization not found")

// OrganizationRepository reads customer accounts from the remote account service.
type OrganizationRepository interface {
	Fetch(ctx context.Context, organizationID string) (*models.Organization, error)
}

// LambdaAPI is the subset of the Lambda client the repositories use.
type LambdaAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

type organizationRepository struct {
	client       LambdaAPI
	functionName string
}

// NewOrganizationRepository creates a repository backed by the account
// service's get-organization function.
func NewOrganizationRepository(client LambdaAPI, functionName string) OrganizationRepository {
	return &organizationRepository{client: client, functionName: functionName}
}

// invocationResponse is the proxy-style response the downstream functions return.
type invocationResponse struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

func (r *organizationRepository) Fetch(ctx context.Context, organizationID string) (*models.Organization, error) {
	request, err := json.Marshal(map[string]string{"OrganizationId": organizationID})
	if err != nil {
		return nil, fmt.Errorf("marshal organization request: %w", err)
	}

	out, err := r.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(r.functionName),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        request,
	})
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", r.functionName, err)
	}
	if len(out.Payload) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrOrganizationNotFound, organizationID)
	}

	var resp invocationResponse
	if err := json.Unmarshal(out.Payload, &resp); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", r.functionName, err)
	}
	if resp.StatusCode == http.StatusNotFound || resp.Body == "" {
		return nil, fmt.Errorf("%w: %s", ErrOrganizationNotFound, organizationID)
	}

	var org models.Organization
	if err := json.Unmarshal([]byte(resp.Body), &org); err != nil {
		return nil, fmt.Errorf("decode organization %s: %w", organizationID, err)
	}
	return &org, nil
}
