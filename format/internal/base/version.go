package base

import "sort"

// releases lists the first data version of each Minecraft release, ascending.
var releases = []struct {
	dataVersion int
	name        string
}{
	{169, "1.9"},
	{175, "1.9.1"},
	{176, "1.9.2"},
	{183, "1.9.3"},
	{184, "1.9.4"},
	{510, "1.10"},
	{511, "1.10.1"},
	{512, "1.10.2"},
	{819, "1.11"},
	{921, "1.11.1"},
	{922, "1.11.2"},
	{1139, "1.12"},
	{1241, "1.12.1"},
	{1343, "1.12.2"},
	{1519, "1.13"},
	{1628, "1.13.1"},
	{1631, "1.13.2"},
	{1952, "1.14"},
	{1976, "1.14.4"},
	{2225, "1.15"},
	{2230, "1.15.2"},
	{2566, "1.16"},
	{2586, "1.16.5"},
	{2724, "1.17"},
	{2730, "1.17.1"},
	{2860, "1.18"},
	{2975, "1.18.2"},
	{3105, "1.19"},
	{3117, "1.19.1"},
	{3120, "1.19.2"},
	{3218, "1.19.3"},
	{3337, "1.19.4"},
	{3463, "1.20"},
	{3465, "1.20.1"},
	{3578, "1.20.2"},
	{3700, "1.20.4"},
	{3837, "1.20.5"},
	{3839, "1.20.6"},
	{3953, "1.21"},
	{3955, "1.21.1"},
	{4080, "1.21.2"},
	{4082, "1.21.3"},
	{4189, "1.21.4"},
	{4325, "1.21.5"},
	{4435, "1.21.6"},
	{4438, "1.21.7"},
	{4440, "1.21.8"},
	{4554, "1.21.9"},
	{4556, "1.21.10"},
	{4665, "1.21.11"},
}

// Version returns the Minecraft version the schematic's data version belongs
// to, e.g. "1.20.1", or "" if it predates 1.9.
func (s *Schematic) Version() string {
	return MinecraftVersion(s.DataVersion)
}

// MinecraftVersion maps a data version to a Minecraft version name.
func MinecraftVersion(dataVersion int) string {
	i := sort.Search(len(releases), func(i int) bool { return releases[i].dataVersion > dataVersion })
	if i == 0 {
		return ""
	}
	return releases[i-1].name
}
