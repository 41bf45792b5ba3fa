package entity

// Store идентифицирует витрину.
type Store string

const (
	StoreSteam     Store = "steam"
	StoreNuuvem    Store = "nuuvem"
	StoreGMG       Store = "gmg"
	StoreNuuvemWeb Store = "nuuvem-web"
)

func (s Store) String() string {
	return string(s)
}

// DisplayName возвращает название витрины для сообщений.
func (s Store) DisplayName() string {
	switch s {
	case StoreSteam:
		return "Steam"
	case StoreNuuvem, StoreNuuvemWeb:
		return "Nuuvem"
	case StoreGMG:
		return "GMG"
	default:
		return string(s)
	}
}
