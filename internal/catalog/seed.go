package catalog

// Seed returns the default product listing used when no database backs the
// catalog. Ids are sparse on purpose; they mirror the production listing.
func Seed() []Product {
	return []Product{
		{ID: 1, Name: "Montre Chronographe Soul", Price: 199000, OriginalPrice: 225000, Category: "Montres", ImageURL: "https://picsum.photos/seed/guitar/600/600"},
		{ID: 2, Name: "Chaussure Cuir Classique", Price: 149000, OriginalPrice: 175000, Category: "Chaussures", ImageURL: "https://picsum.photos/seed/camera/600/600"},
		{ID: 3, Name: "Veste Minimaliste en Cuir", Price: 125000, Category: "Prêt-à-Porter", ImageURL: "https://picsum.photos/seed/watch/600/600"},
		{ID: 4, Name: "Chemise Pour-Over en Coton", Price: 55000, Category: "Prêt-à-Porter", ImageURL: "https://picsum.photos/seed/coffee/600/600"},
		{ID: 5, Name: "Sac à Dos Urbain en Toile", Price: 78000, Category: "Prêt-à-Porter", ImageURL: "https://picsum.photos/seed/backpack/600/600"},
		{ID: 6, Name: "Chaussure de Ville Hi-Fi", Price: 259000, OriginalPrice: 295000, Category: "Chaussures", ImageURL: "https://picsum.photos/seed/speakers/600/600"},
		{ID: 9, Name: "Montre Connectée Réduction de Bruit", Price: 175000, OriginalPrice: 195000, Category: "Montres", ImageURL: "https://picsum.photos/seed/headphones/600/600"},
		{ID: 12, Name: "Pantalon Intérieur Intelligent", Price: 140000, Category: "Prêt-à-Porter", ImageURL: "https://picsum.photos/seed/garden/600/600"},
	}
}
