package catalog

// Ключи кэша справочников для публичного каталога
const (
	cacheKeyActiveCategories = "categories:active"
	cacheKeyActiveCities     = "cities:active"
)

// Service сервис каталога: категории, районы и услуги
type Service struct {
	categoryRepo CategoryRepository
	cityRepo     CityRepository
	serviceRepo  ServiceRepository
	vendorRepo   VendorRepository
	cache        Cache
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	categoryRepo CategoryRepository,
	cityRepo CityRepository,
	serviceRepo ServiceRepository,
	vendorRepo VendorRepository,
	cache Cache,
	logger Logger,
) *Service {
	return &Service{
		categoryRepo: categoryRepo,
		cityRepo:     cityRepo,
		serviceRepo:  serviceRepo,
		vendorRepo:   vendorRepo,
		cache:        cache,
		logger:       logger,
	}
}
