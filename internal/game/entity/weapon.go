package entity

import "fmt"

// Weapon is one of the player's weapon slots.
type Weapon int

// Weapons in slot order.
const (
	WeaponKnife Weapon = iota
	WeaponPistol
	WeaponMachineGun
	WeaponMinigun
	numWeapons
)

var weaponDamage = [numWeapons]int{
	WeaponKnife:      15,
	WeaponPistol:     25,
	WeaponMachineGun: 20,
	WeaponMinigun:    15,
}

// String returns the weapon name, which is also its overlay texture name.
func (w Weapon) String() string {
	switch w {
	case WeaponKnife:
		return "knife"
	case WeaponPistol:
		return "pistol"
	case WeaponMachineGun:
		return "machinegun"
	case WeaponMinigun:
		return "minigun"
	default:
		return fmt.Sprintf("weapon(%d)", int(w))
	}
}

// Damage returns the hit damage.
func (w Weapon) Damage() int {
	if w < 0 || w >= numWeapons {
		return 0
	}
	return weaponDamage[w]
}

// UsesAmmo reports whether firing consumes ammunition.
func (w Weapon) UsesAmmo() bool {
	return w != WeaponKnife
}
