package binrange

import "git.thinkinpower.net/cardmeta/mod"

// bootstrap is the static table every Table starts from. The first entry is
// the catch-all; its empty bounds match every number and lose to any other
// match on specificity.
var bootstrap = []mod.BinRange{
	{Low: "", High: "", PanLength: 19, Brand: mod.BrandUnknown},

	{Low: "34", High: "34", PanLength: 15, Brand: mod.BrandAmex},
	{Low: "37", High: "37", PanLength: 15, Brand: mod.BrandAmex},

	{Low: "30", High: "30", PanLength: 16, Brand: mod.BrandDinersClub},
	{Low: "36", High: "36", PanLength: 14, Brand: mod.BrandDinersClub},
	{Low: "38", High: "39", PanLength: 16, Brand: mod.BrandDinersClub},

	{Low: "60", High: "60", PanLength: 16, Brand: mod.BrandDiscover},
	{Low: "64", High: "65", PanLength: 16, Brand: mod.BrandDiscover},

	{Low: "35", High: "35", PanLength: 16, Brand: mod.BrandJCB},

	{Low: "50", High: "59", PanLength: 16, Brand: mod.BrandMastercard},
	{Low: "22", High: "27", PanLength: 16, Brand: mod.BrandMastercard},
	{Low: "67", High: "67", PanLength: 16, Brand: mod.BrandMastercard},

	{Low: "62", High: "62", PanLength: 16, Brand: mod.BrandUnionPay},
	{Low: "81", High: "81", PanLength: 16, Brand: mod.BrandUnionPay},

	{Low: "40", High: "49", PanLength: 16, Brand: mod.BrandVisa},
	{Low: "413600", High: "413600", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "444509", High: "444509", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "444550", High: "444550", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "450603", High: "450603", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "450617", High: "450617", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "450628", High: "450629", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "450636", High: "450636", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "450640", High: "450641", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "450662", High: "450662", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "463100", High: "463100", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "476142", High: "476142", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "476143", High: "476143", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "492901", High: "492902", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "492920", High: "492920", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "492923", High: "492923", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "492928", High: "492930", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "492937", High: "492937", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "492939", High: "492939", PanLength: 13, Brand: mod.BrandVisa},
	{Low: "492960", High: "492960", PanLength: 13, Brand: mod.BrandVisa},
}

// Bootstrap returns a fresh copy of the static range table.
func Bootstrap() Table {
	t := make(Table, len(bootstrap))
	copy(t, bootstrap)
	return t
}

// CatchAll is the range unmatched numbers degrade to.
func CatchAll() mod.BinRange {
	return bootstrap[0]
}
