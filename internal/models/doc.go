// Package models defines the core domain records for splitledger.
//
// Four record kinds are persisted:
//   - User: a registered account, keyed by email
//   - Group: a fixed set of member emails that expenses and payments can be tagged with
//   - Expense: a shared cost split among participants
//   - Payment: a direct transfer between two users
//
// Users are identified by email everywhere: participant lists, payer fields
// and split mappings all hold emails, so an expense can reference people who
// have not registered yet. Records are immutable after creation, with one
// exception: the fix-expenses maintenance sweep may rewrite an expense's
// splits (see the service layer).
//
// Derived data (net balances, group balances) is never stored; it is
// recomputed from these records on every read.
package models
