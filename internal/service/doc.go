// Package service implements business logic for the atelier application.
//
// This package provides the service layer that coordinates between the
// HTTP handlers and the repository layer, implementing validation and
// event publishing.
//
// # Services
//
// ShopService manages the shop's entities (customers, products,
// measurements, orders) along with the dashboard aggregate and full-data
// export via codec adapters.
//
// # Event System
//
// The service publishes events via EventBus for real-time updates to
// connected clients via Server-Sent Events (SSE). Event types cover
// creation, update, and deletion of every entity.
//
// # Design Principles
//
// - The service owns validation; the repository owns persistence
// - Events fire only after a write has succeeded
// - Context-aware for cancellation and timeouts
package service
