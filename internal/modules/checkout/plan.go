package checkout

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// PlanInput carries everything BuildPlan needs: the request plus the
// reference data read under lock inside the commit transaction.
type PlanInput struct {
	TransactionNumber int64
	BatchNumber       int64
	Time              time.Time
	Request           CreateTransactionRequest
	Items             map[int64]*ItemSnapshot
	Taxes             []TaxRate
	Tenders           map[int64]*TenderSnapshot
}

// Plan is the fully computed sale, ready to persist in one atomic unit.
type Plan struct {
	Header  Transaction
	Entries []TransactionEntry
	Taxes   []TaxEntry
	Tenders []TenderEntry
	Receipt Receipt
	Change  decimal.Decimal

	// Decrements is the per-item stock reduction, aggregated across lines
	// that sell the same item.
	Decrements map[int64]int
}

// BuildPlan prices the cart, validates stock for every line before any
// mutation is planned, computes tax entries with banker's rounding at the
// minor currency unit, and validates that tendered amounts cover the
// total. It returns a DeclineError for any business-rule violation and
// never touches storage itself.
func BuildPlan(in PlanInput) (*Plan, error) {
	req := in.Request

	p := &Plan{
		Header: Transaction{
			TransactionNumber: in.TransactionNumber,
			StoreID:           req.StoreID,
			BatchNumber:       in.BatchNumber,
			Time:              in.Time,
			CustomerID:        req.CustomerID,
			CashierID:         req.CashierID,
			RegisterID:        req.RegisterID,
			Status:            StatusPending,
		},
		Decrements: make(map[int64]int),
	}

	subtotal := decimal.Zero
	taxableBase := decimal.Zero

	for i, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, declinef(CodeInvalidQuantity, "line %d: quantity must be greater than zero", i+1)
		}
		item, ok := in.Items[line.ItemID]
		if !ok || !item.Active {
			return nil, declinef(CodeItemNotFound, "item %d not found", line.ItemID)
		}

		price := item.Price
		if line.Price != nil {
			price = *line.Price
		}
		extended := price.Mul(decimal.NewFromInt(int64(line.Quantity))).RoundBank(2)

		subtotal = subtotal.Add(extended)
		if item.Taxable {
			taxableBase = taxableBase.Add(extended)
		}
		p.Decrements[line.ItemID] += line.Quantity

		p.Entries = append(p.Entries, TransactionEntry{
			TransactionNumber: in.TransactionNumber,
			StoreID:           req.StoreID,
			BatchNumber:       in.BatchNumber,
			LineNumber:        i + 1,
			ItemID:            line.ItemID,
			Price:             price,
			Quantity:          line.Quantity,
			Taxable:           item.Taxable,
			ExtendedPrice:     extended,
			Cost:              item.Cost,
			Comment:           line.Comment,
		})
	}

	// Every line is checked before any decrement is planned, so a short
	// line aborts the whole sale with stock untouched.
	for itemID, qty := range p.Decrements {
		if item := in.Items[itemID]; item.Quantity < qty {
			return nil, declinef(CodeInsufficientStock,
				"item %d: requested %d, only %d in stock", itemID, qty, item.Quantity)
		}
	}

	taxTotal := decimal.Zero
	if taxableBase.IsPositive() {
		for _, rate := range in.Taxes {
			amount := taxableBase.Mul(rate.Percentage).Div(oneHundred).RoundBank(2)
			taxTotal = taxTotal.Add(amount)
			p.Taxes = append(p.Taxes, TaxEntry{
				TransactionNumber: in.TransactionNumber,
				StoreID:           req.StoreID,
				BatchNumber:       in.BatchNumber,
				TaxID:             rate.ID,
				TaxableAmount:     taxableBase,
				TaxAmount:         amount,
				TaxPercentage:     rate.Percentage,
			})
		}
	}

	total := subtotal.Add(taxTotal)
	p.Header.Subtotal = subtotal
	p.Header.TaxTotal = taxTotal
	p.Header.Total = total

	tendered := decimal.Zero
	for i, t := range req.Tenders {
		if !t.Amount.IsPositive() {
			return nil, declinef(CodeValidation, "tender %d: amount must be greater than zero", i+1)
		}
		snap, ok := in.Tenders[t.TenderID]
		if !ok || !snap.Active {
			return nil, declinef(CodeUnknownTender, "tender %d is not a known active tender", t.TenderID)
		}
		tendered = tendered.Add(t.Amount)
		p.Tenders = append(p.Tenders, TenderEntry{
			TransactionNumber: in.TransactionNumber,
			StoreID:           req.StoreID,
			BatchNumber:       in.BatchNumber,
			TenderID:          t.TenderID,
			Amount:            t.Amount,
			AuthorizationCode: t.AuthorizationCode,
			CardNumber:        t.CardNumber,
			CardType:          t.CardType,
			CheckNumber:       t.CheckNumber,
		})
	}
	if tendered.LessThan(total) {
		return nil, declinef(CodeInsufficientTender,
			"tendered %s is less than total %s", tendered.StringFixed(2), total.StringFixed(2))
	}
	p.Change = tendered.Sub(total)

	p.Receipt = Receipt{
		TransactionNumber: in.TransactionNumber,
		StoreID:           req.StoreID,
		BatchNumber:       in.BatchNumber,
		ReceiptNumber:     receiptNumber(req.StoreID, in.Time, in.TransactionNumber),
		PrintDate:         in.Time,
	}

	return p, nil
}

// receiptNumber derives the human-readable receipt identifier from store,
// sale date, and transaction number.
func receiptNumber(storeID int64, at time.Time, transactionNumber int64) string {
	return fmt.Sprintf("%d-%s-%d", storeID, at.Format("20060102"), transactionNumber)
}
