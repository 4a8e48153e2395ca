package lang

import (
	"regexp"
	"strings"
)

// validPattern accepts the key namespaces that make up the curated
// subset: in-game content names (blocks, items, entities, biomes,
// effects, enchantments, upgrades, map labels, armor trim patterns)
// plus advancement titles.
var validPattern = regexp.MustCompile(
	`^(block\.minecraft\.[^.]*` +
		`|entity\.minecraft\.[^.]*` +
		`|item\.minecraft\.[^.]*` +
		`|item\.minecraft\.[^.]*\.effect\.[^.]*` +
		`|biome\..*` +
		`|effect\.minecraft\.[^.]*` +
		`|enchantment\.minecraft\..*` +
		`|upgrade\..*` +
		`|filled_map\..*` +
		`|trim_pattern\..*` +
		`|advancements\.[^.]*\.[^.]*\.title)$`,
)

// exclusions are keys inside the accepted namespaces that are not
// content names (UI strings, removed content, technical entries).
var exclusions = map[string]struct{}{
	"block.minecraft.set_spawn":           {},
	"enchantment.minecraft.sweeping":      {},
	"entity.minecraft.falling_block_type": {},
	"filled_map.id":                       {},
	"filled_map.level":                    {},
	"filled_map.locked":                   {},
	"filled_map.scale":                    {},
	"filled_map.unknown":                  {},
}

// IsValidKey reports whether a translation key belongs in the valid
// (filtered) output. Reject rules run first and any match rejects:
// explicit exclusions, then legacy pottery_shard keys. Surviving keys
// must match the namespace pattern in full.
//
// The predicate is pure and depends only on the key string, so the
// valid file is always a strict key-subset of the full file.
func IsValidKey(key string) bool {
	if _, excluded := exclusions[key]; excluded {
		return false
	}
	if strings.Contains(key, "pottery_shard") {
		return false
	}
	return validPattern.MatchString(key)
}
