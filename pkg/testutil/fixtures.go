package testutil

import (
	"github.com/google/uuid"
)

// Fixed UUIDs for deterministic testing.
var (
	TestLoanID        = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestPaymentID     = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TestLenderID1     = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	TestLenderID2     = uuid.MustParse("00000000-0000-0000-0000-000000000011")
	TestBorrowerID    = uuid.MustParse("00000000-0000-0000-0000-000000000020")
	TestBankAccountID = uuid.MustParse("00000000-0000-0000-0000-000000000030")
)
