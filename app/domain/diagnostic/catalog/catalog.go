// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package catalog registers the available diagnostic providers in their
// fixed execution order.
package catalog

import (
	"context"

	config "github.com/inkdash/inkdash/app/config/display"
	"github.com/inkdash/inkdash/app/domain/diagnostic"
	"github.com/inkdash/inkdash/app/domain/diagnostic/auth"
	"github.com/inkdash/inkdash/app/domain/diagnostic/blocking"
	"github.com/inkdash/inkdash/app/domain/diagnostic/connectivity"
	"github.com/inkdash/inkdash/app/domain/diagnostic/summary"
	"github.com/inkdash/inkdash/app/redact"
)

// Registry exposes the registered checks. List preserves registration order,
// which is the execution order.
type Registry interface {
	Get(name string) (diagnostic.Provider, bool)
	Has(name string) bool
	List() []string
}

type registry struct {
	order     []string
	providers map[string]diagnostic.Provider
}

func NewCatalog(ctx context.Context, cfg *config.Settings, pol redact.Policy) Registry {
	r := &registry{providers: map[string]diagnostic.Provider{}}
	r.add(config.DiagnosticAPIConnectivity, connectivity.NewProvider(ctx, cfg))
	r.add(config.DiagnosticAPIAuth, auth.NewProvider(ctx, cfg, pol))
	r.add(config.DiagnosticAPISummary, summary.NewProvider(ctx, cfg, pol))
	r.add(config.DiagnosticDNSBlocking, blocking.NewProvider(ctx, cfg))
	return r
}

func (r *registry) add(name string, p diagnostic.Provider) {
	r.order = append(r.order, name)
	r.providers[name] = p
}

func (r *registry) Get(name string) (diagnostic.Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

func (r *registry) Has(name string) bool {
	_, ok := r.providers[name]
	return ok
}

func (r *registry) List() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
