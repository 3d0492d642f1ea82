package database

// Database is the facade over the flat-file record store. It owns the
// shared store and hands out one repository per collection. It is
// constructed once in main and injected into the API layer; there is
// no package-level instance.
type Database struct {
	projectRepo  *ProjectRepo
	userRepo     *UserRepo
	settingsRepo *SettingsRepo
}

// Open loads (or initializes) the JSON document at path and wires each
// repository to the shared store.
func Open(path string) (Database, error) {
	st, err := openStore(path)
	if err != nil {
		return Database{}, err
	}

	return Database{
		projectRepo:  NewProjectRepo(st),
		userRepo:     NewUserRepo(st),
		settingsRepo: NewSettingsRepo(st),
	}, nil
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) SettingsRepo() *SettingsRepo {
	return d.settingsRepo
}
