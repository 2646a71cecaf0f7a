package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

// LeadUseCase validates, maps and forwards lead writes to the CRM. The CRM
// response body is returned untouched.
type LeadUseCase struct {
	Gateway entity.LeadGateway
	Events  LeadEventPublisher
	Logger  *zap.Logger
	Now     func() time.Time
}

func NewLeadUseCase(gateway entity.LeadGateway, events LeadEventPublisher, logger *zap.Logger) *LeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadUseCase{
		Gateway: gateway,
		Events:  events,
		Logger:  logger,
		Now:     time.Now,
	}
}

func (uc *LeadUseCase) InsertDeal(ctx context.Context, in InsertDealRequest) (json.RawMessage, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	return uc.insert(ctx, MapInsertDeal(in))
}

func (uc *LeadUseCase) InsertTaxIntake(ctx context.Context, in InsertTaxIntakeRequest) (json.RawMessage, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	return uc.insert(ctx, MapInsertTaxIntake(in))
}

func (uc *LeadUseCase) UpdateStage(ctx context.Context, id string, in UpdateStageRequest) (json.RawMessage, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	return uc.update(ctx, id, MapStage(in))
}

// UpdateTaxStage is the intake funnel's alias of UpdateStage.
func (uc *LeadUseCase) UpdateTaxStage(ctx context.Context, id string, in UpdateStageRequest) (json.RawMessage, error) {
	return uc.UpdateStage(ctx, id, in)
}

func (uc *LeadUseCase) UpdateAmount(ctx context.Context, id string, in UpdateAmountRequest) (json.RawMessage, error) {
	return uc.update(ctx, id, MapAmount(in))
}

func (uc *LeadUseCase) UpdateSSN(ctx context.Context, id string, in UpdateSSNRequest) (json.RawMessage, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	return uc.update(ctx, id, MapSSN(in))
}

func (uc *LeadUseCase) UpdateRecord(ctx context.Context, id string, in UpdateRecordRequest) (json.RawMessage, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	return uc.update(ctx, id, MapRecord(in))
}

func (uc *LeadUseCase) UpdateExisting(ctx context.Context, id string, in UpdateExistingRequest) (json.RawMessage, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}
	return uc.update(ctx, id, MapExisting(in))
}

func (uc *LeadUseCase) GetRecord(ctx context.Context, id string) (json.RawMessage, error) {
	body, err := uc.Gateway.GetDeal(ctx, id)
	if err != nil {
		return nil, upstreamFailure(err)
	}
	return body, nil
}

func (uc *LeadUseCase) insert(ctx context.Context, fields entity.DealFields) (json.RawMessage, error) {
	body, err := uc.Gateway.InsertDeal(ctx, fields)
	if err != nil {
		return nil, upstreamFailure(err)
	}
	uc.publish(ctx, entity.LeadCreated, createdDealID(body), fields)
	return body, nil
}

func (uc *LeadUseCase) update(ctx context.Context, id string, fields entity.DealFields) (json.RawMessage, error) {
	body, err := uc.Gateway.UpdateDeal(ctx, id, fields)
	if err != nil {
		return nil, upstreamFailure(err)
	}
	uc.publish(ctx, entity.LeadUpdated, id, fields)
	return body, nil
}

// publish never fails the request; the CRM write already happened.
func (uc *LeadUseCase) publish(ctx context.Context, kind, dealID string, fields entity.DealFields) {
	if uc.Events == nil {
		return
	}
	ev := entity.LeadEvent{
		EventID:    uuid.NewString(),
		Type:       kind,
		DealID:     dealID,
		Stage:      fieldString(fields, "Stage"),
		Email:      fieldString(fields, "Email"),
		Source:     fieldString(fields, "Lead_Source"),
		OccurredAt: uc.Now().UTC(),
	}
	if err := uc.Events.PublishLeadEvent(ctx, ev); err != nil {
		uc.Logger.Warn("⚠️ lead event not published",
			zap.String("type", kind),
			zap.String("deal_id", dealID),
			zap.Error(err),
		)
	}
}

func upstreamFailure(err error) error {
	if errors.Is(err, entity.ErrUnableToGetToken) {
		return &TechnicalError{Code: CodeUpstreamAuth, Message: entity.ErrUnableToGetToken.Error(), Err: err}
	}
	return &TechnicalError{Code: CodeUpstreamCall, Message: UpstreamFailureMessage, Err: err}
}

func fieldString(fields entity.DealFields, key string) string {
	s, _ := fields[key].(string)
	return s
}

// createdDealID reads data[0].details.id from a Deals insert response.
func createdDealID(body []byte) string {
	var resp struct {
		Data []struct {
			Details struct {
				ID string `json:"id"`
			} `json:"details"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Data) == 0 {
		return ""
	}
	return resp.Data[0].Details.ID
}
