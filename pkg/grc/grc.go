// Package grc declares the GRC portfolio record types and binds each one to
// the shared record protocol. Every type here carries a store-assigned _id,
// a numeric business key No, and the text fields its collection searches on;
// the BSON field names (spaces included) mirror the live collections and
// must not be renamed.
package grc

import (
	"context"

	"github.com/grcledger/grcledger/pkg/controller"
	"github.com/grcledger/grcledger/pkg/observability/logger"
	"github.com/grcledger/grcledger/pkg/record"
	"github.com/grcledger/grcledger/pkg/server/router"
)

// Mount wires every resource under the given router group: one store, one
// service, and one HTTP controller per portfolio type, plus the standalone
// transactions handler. Index creation runs eagerly so key-uniqueness
// problems surface at startup, not mid-request.
func Mount(ctx context.Context, api router.Router, exec record.Executor, log logger.Logger) error {
	if err := mount(ctx, api, exec, ProcessDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, AdequacyDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, EffectivenessDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, EfficiencyDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, ProcessSeverityDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, ControlActivityDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, ControlAssessmentDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, InternalAuditTestDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, SoxDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, CosoEnvironmentDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, IntosaiEnvironmentDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, OtherEnvironmentDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, InherentRiskDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, ResidualRiskDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, RiskResponseDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, AssertionDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, ExceptionLogDescriptor(), log); err != nil {
		return err
	}
	if err := mount(ctx, api, exec, OwnershipDescriptor(), log); err != nil {
		return err
	}
	NewTransactionHandler(exec, log).Register(api)
	return nil
}

func mount[T any](ctx context.Context, api router.Router, exec record.Executor, desc record.Descriptor[T], log logger.Logger) error {
	store, err := record.NewStore(exec, desc, log)
	if err != nil {
		return err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}
	svc := record.NewService(store, log)
	controller.NewResource(svc, log).Register(api)
	log.Debug("resource mounted", "collection", desc.Collection, "path", desc.Path)
	return nil
}
