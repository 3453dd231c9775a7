package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type BossTag struct{}

var BossTagComponent = NewComponent[BossTag]()

// BlockTag marks a solid platform. The boss carries one on its back.
type BlockTag struct{}

var BlockTagComponent = NewComponent[BlockTag]()

// ExplosionTag marks a cosmetic explosion. It never deals damage.
type ExplosionTag struct{}

var ExplosionTagComponent = NewComponent[ExplosionTag]()
