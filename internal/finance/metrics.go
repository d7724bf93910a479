package finance

// Derived metric names.
const (
	itemRevenue       = "Revenue from operations"
	itemOtherIncome   = "Other income"
	itemCOGS          = "Cost of materials consumed"
	itemEmployeeCost  = "Employee benefits expense"
	itemOtherExpenses = "Other expenses"

	ItemTotalRevenue = "Total Revenue"
	ItemGrossProfit  = "Gross Profit"
	ItemGrossMargin  = "Gross Margin"
	ItemEBITDA       = "EBITDA"
)

// Derive appends calculated metrics (Total Revenue, Gross Profit, Gross
// Margin, EBITDA) to the statement. A metric is computed for a period only
// when its required inputs were actually extracted for that period; every
// derived value is flagged as calculated so exports can distinguish it from
// disclosed figures.
func Derive(st *Statement) {
	periods := allPeriods(st)

	revenue := st.Item(itemRevenue)
	other := st.Item(itemOtherIncome)
	if revenue != nil {
		total := newDerived(ItemTotalRevenue)
		for _, p := range periods {
			rev, ok := revenue.Values[p]
			if !ok {
				continue
			}
			v := rev
			if other != nil {
				v += other.Values[p]
			}
			total.Values[p] = v
			total.Status[p] = StatusCalculated
		}
		appendDerived(st, total)
	}

	totalRev := st.Item(ItemTotalRevenue)
	cogs := st.Item(itemCOGS)
	if totalRev != nil && cogs != nil {
		gp := newDerived(ItemGrossProfit)
		for _, p := range periods {
			rev, okR := totalRev.Values[p]
			c, okC := cogs.Values[p]
			if okR && okC {
				gp.Values[p] = rev - c
				gp.Status[p] = StatusCalculated
			}
		}
		appendDerived(st, gp)
	}

	grossProfit := st.Item(ItemGrossProfit)
	if grossProfit != nil && totalRev != nil {
		gm := newDerived(ItemGrossMargin)
		for _, p := range periods {
			gpv, okG := grossProfit.Values[p]
			rev, okR := totalRev.Values[p]
			if okG && okR && rev != 0 {
				gm.Values[p] = gpv / rev
				gm.Status[p] = StatusCalculated
			}
		}
		appendDerived(st, gm)
	}

	if grossProfit != nil {
		emp := st.Item(itemEmployeeCost)
		opex := st.Item(itemOtherExpenses)
		ebitda := newDerived(ItemEBITDA)
		for _, p := range periods {
			gpv, ok := grossProfit.Values[p]
			if !ok {
				continue
			}
			// Missing expense lines count as zero, matching how the
			// statement itself would roll them up.
			v := gpv
			if emp != nil {
				v -= emp.Values[p]
			}
			if opex != nil {
				v -= opex.Values[p]
			}
			ebitda.Values[p] = v
			ebitda.Status[p] = StatusCalculated
		}
		appendDerived(st, ebitda)
	}
}

func newDerived(name string) LineItem {
	return LineItem{
		Name:   name,
		Values: map[string]float64{},
		Status: map[string]string{},
	}
}

func appendDerived(st *Statement, item LineItem) {
	if len(item.Values) == 0 {
		return
	}
	st.LineItems = append(st.LineItems, item)
}

func allPeriods(st *Statement) []string {
	seen := map[string]bool{}
	var periods []string
	for _, p := range st.Periods {
		if !seen[p] {
			seen[p] = true
			periods = append(periods, p)
		}
	}
	for _, item := range st.LineItems {
		for p := range item.Values {
			if !seen[p] {
				seen[p] = true
				periods = append(periods, p)
			}
		}
	}
	return periods
}
