// Package models defines the core domain models for QuickSplit.
//
// # Models
//
//   - Person: A participant on a bill. At most one person per bill is the
//     payer, the one who fronted the money at the restaurant.
//   - BillItem: One receipt line (unit price, quantity, derived total,
//     assignment set).
//   - Bill: The working set of items, people, and running total being edited.
//   - SavedBill: A Bill persisted under a name and date, owned by one user.
//   - PaymentSummary: A directed amount one person owes the payer.
//   - User: A registered account that owns saved bills.
//
// # Design Principles
//
//  1. IDs are opaque strings (UUIDs once persisted); relationships use ID
//     strings rather than pointers to avoid circular references.
//  2. Bill carries a running Total that mutation operations maintain
//     incrementally, never recomputed from scratch.
//  3. The split calculation never mutates these models; it reads items and
//     people and produces PaymentSummary values.
package models
