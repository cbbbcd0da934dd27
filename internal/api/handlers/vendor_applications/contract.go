package vendor_applications

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/service/vendorapplications/models"
	approveApplication "github.com/m04kA/SMC-MarketplaceService/internal/usecase/approve_vendor_application"
)

type ApplicationService interface {
	Submit(ctx context.Context, userID int64, req *models.SubmitApplicationRequest) (*models.ApplicationResponse, error)
	GetMine(ctx context.Context, userID int64) (*models.ApplicationResponse, error)
	List(ctx context.Context, status *string) (*models.ApplicationListResponse, error)
	Reject(ctx context.Context, id, reviewerID int64, req *models.RejectApplicationRequest) (*models.ApplicationResponse, error)
}

type ApproveUseCase interface {
	Execute(ctx context.Context, req *approveApplication.Request) (*approveApplication.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
