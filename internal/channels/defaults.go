// SPDX-License-Identifier: MIT

package channels

// defaultChannels is the built-in line-up. Order is the emission order.
var defaultChannels = []Channel{
	{ID: "1001", Name: "澳視澳門", Alias: "aomen"},
	{ID: "1002", Name: "Canal Macau", Alias: "canalmacau"},
	{ID: "1003", Name: "澳門資訊", Alias: "info"},
	{ID: "1004", Name: "澳門體育", Alias: "sport"},
	{ID: "1005", Name: "澳視綜藝", Alias: "variety"},
	{ID: "1006", Name: "澳門衛視", Alias: "satellite"},
	{ID: "1007", Name: "TDM Macau Ou Mun", Alias: "ouMun"},
}

// Default returns the built-in registry.
func Default() *Registry {
	reg, err := New(defaultChannels)
	if err != nil {
		panic("channels: invalid built-in registry: " + err.Error())
	}
	return reg
}
