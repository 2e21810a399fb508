package services

import (
	"sync"
	"time"

	"pathxpress/internal/apperrors"
	"pathxpress/internal/models"

	"gorm.io/gorm"
)

// In-memory repository fakes. They honor the same contracts the gorm
// implementations do, including the unique-number and COD-claim
// guarantees, so the services can be exercised without a database.

type fakeClientRepo struct {
	clients map[uint]*models.ClientAccount
	volume  int
}

func newFakeClientRepo(clients ...*models.ClientAccount) *fakeClientRepo {
	repo := &fakeClientRepo{clients: make(map[uint]*models.ClientAccount)}
	for _, client := range clients {
		repo.clients[client.ID] = client
	}
	return repo
}

func (r *fakeClientRepo) Create(client *models.ClientAccount) error {
	r.clients[client.ID] = client
	return nil
}

func (r *fakeClientRepo) GetByID(id uint) (*models.ClientAccount, error) {
	client, ok := r.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return client, nil
}

func (r *fakeClientRepo) GetAll() ([]models.ClientAccount, error) {
	var all []models.ClientAccount
	for _, client := range r.clients {
		all = append(all, *client)
	}
	return all, nil
}

func (r *fakeClientRepo) Update(client *models.ClientAccount) error {
	r.clients[client.ID] = client
	return nil
}

func (r *fakeClientRepo) Delete(id uint) error {
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) MonthlyShipmentVolume(clientID uint, since time.Time) (int, error) {
	return r.volume, nil
}

type fakeTierRepo struct {
	tiers map[uint]*models.RateTier
}

func newFakeTierRepo(tiers ...*models.RateTier) *fakeTierRepo {
	repo := &fakeTierRepo{tiers: make(map[uint]*models.RateTier)}
	for _, tier := range tiers {
		repo.tiers[tier.ID] = tier
	}
	return repo
}

func (r *fakeTierRepo) Create(tier *models.RateTier) error {
	r.tiers[tier.ID] = tier
	return nil
}

func (r *fakeTierRepo) GetByID(id uint) (*models.RateTier, error) {
	tier, ok := r.tiers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return tier, nil
}

func (r *fakeTierRepo) GetAll() ([]models.RateTier, error) {
	var all []models.RateTier
	for _, tier := range r.tiers {
		all = append(all, *tier)
	}
	return all, nil
}

func (r *fakeTierRepo) GetActiveByService(serviceType models.ServiceType) ([]models.RateTier, error) {
	var matching []models.RateTier
	for _, tier := range r.tiers {
		if tier.ServiceType == serviceType && tier.IsActive {
			matching = append(matching, *tier)
		}
	}
	return matching, nil
}

func (r *fakeTierRepo) Update(tier *models.RateTier) error {
	r.tiers[tier.ID] = tier
	return nil
}

func (r *fakeTierRepo) Delete(id uint) error {
	delete(r.tiers, id)
	return nil
}

type fakeSettings struct {
	cfg models.ServiceConfig
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{cfg: models.DefaultServiceConfig()}
}

func (s *fakeSettings) GetConfig() (models.ServiceConfig, error) {
	return s.cfg, nil
}

func (s *fakeSettings) UpdateSetting(setting *models.ServiceSetting) error {
	return nil
}

func (s *fakeSettings) GetAll() ([]models.ServiceSetting, error) {
	return nil, nil
}

type fakeShipmentRepo struct {
	mu        sync.Mutex
	nextID    uint
	shipments map[uint]*models.Shipment
	events    map[uint][]models.TrackingEvent
	// billable seeds ListBillable; consumed IDs are removed once an
	// invoice bills them, mirroring the NOT IN invoice_items filter.
	billable []models.Shipment
	consumed map[uint]bool
	// cod, when set, persists COD records written through the same
	// transaction as the shipment.
	cod *fakeCODRepo
}

func newFakeShipmentRepo() *fakeShipmentRepo {
	return &fakeShipmentRepo{
		shipments: make(map[uint]*models.Shipment),
		events:    make(map[uint][]models.TrackingEvent),
		consumed:  make(map[uint]bool),
	}
}

func (r *fakeShipmentRepo) CreateWithCOD(shipment *models.Shipment, event *models.TrackingEvent, codRecord *models.CODRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.shipments {
		if existing.WaybillNumber == shipment.WaybillNumber {
			return apperrors.Wrap(apperrors.CodeConflict, "duplicate waybill", gorm.ErrDuplicatedKey)
		}
	}
	r.nextID++
	shipment.ID = r.nextID
	r.shipments[shipment.ID] = shipment
	event.ShipmentID = shipment.ID
	r.events[shipment.ID] = append(r.events[shipment.ID], *event)
	if codRecord != nil {
		codRecord.ShipmentID = shipment.ID
		if r.cod != nil {
			codRecord.ID = shipment.ID
			r.cod.mu.Lock()
			r.cod.records[codRecord.ID] = codRecord
			r.cod.mu.Unlock()
		}
	}
	return nil
}

func (r *fakeShipmentRepo) GetByID(id uint) (*models.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shipment, ok := r.shipments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return shipment, nil
}

func (r *fakeShipmentRepo) GetByWaybill(waybillNumber string) (*models.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, shipment := range r.shipments {
		if shipment.WaybillNumber == waybillNumber {
			return shipment, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeShipmentRepo) GetByClient(clientID uint) ([]models.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matching []models.Shipment
	for _, shipment := range r.shipments {
		if shipment.ClientID == clientID {
			matching = append(matching, *shipment)
		}
	}
	return matching, nil
}

func (r *fakeShipmentRepo) GetTrackingEvents(shipmentID uint) ([]models.TrackingEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[shipmentID], nil
}

func (r *fakeShipmentRepo) SaveStatusChange(shipment *models.Shipment, event *models.TrackingEvent, codRecord *models.CODRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shipments[shipment.ID] = shipment
	r.events[shipment.ID] = append(r.events[shipment.ID], *event)
	if codRecord != nil && r.cod != nil {
		r.cod.mu.Lock()
		r.cod.records[codRecord.ID] = codRecord
		r.cod.mu.Unlock()
	}
	return nil
}

func (r *fakeShipmentRepo) AssignRoute(shipmentID uint, routeID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	shipment, ok := r.shipments[shipmentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	shipment.RouteID = &routeID
	return nil
}

func (r *fakeShipmentRepo) ListBillable(clientID uint, periodStart, periodEnd time.Time) ([]models.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matching []models.Shipment
	for _, shipment := range r.billable {
		if shipment.ClientID != clientID || r.consumed[shipment.ID] {
			continue
		}
		if shipment.DeliveredAt == nil || shipment.DeliveredAt.Before(periodStart) || shipment.DeliveredAt.After(periodEnd) {
			continue
		}
		matching = append(matching, shipment)
	}
	return matching, nil
}

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	seq      int64
	nextID   uint
	invoices map[uint]*models.Invoice
	items    map[uint][]models.InvoiceItem
	numbers  map[string]bool
	billed   map[uint]bool
	// shipments, when set, marks billed shipments consumed so later
	// ListBillable calls skip them.
	shipments *fakeShipmentRepo
}

func newFakeInvoiceRepo(shipments *fakeShipmentRepo) *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices:  make(map[uint]*models.Invoice),
		items:     make(map[uint][]models.InvoiceItem),
		numbers:   make(map[string]bool),
		billed:    make(map[uint]bool),
		shipments: shipments,
	}
}

func (r *fakeInvoiceRepo) CreateWithItems(invoice *models.Invoice, items []models.InvoiceItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if item.ShipmentID != nil && r.billed[*item.ShipmentID] {
			return apperrors.Wrap(apperrors.CodeConflict, "shipment already billed", gorm.ErrDuplicatedKey)
		}
	}

	r.seq++
	invoice.InvoiceNumber = models.FormatInvoiceNumber(time.Now(), r.seq)
	if r.numbers[invoice.InvoiceNumber] {
		return apperrors.Wrap(apperrors.CodeConflict, "duplicate invoice number", gorm.ErrDuplicatedKey)
	}

	r.nextID++
	invoice.ID = r.nextID
	r.numbers[invoice.InvoiceNumber] = true
	r.invoices[invoice.ID] = invoice
	for i := range items {
		items[i].InvoiceID = invoice.ID
		if items[i].ShipmentID != nil {
			r.billed[*items[i].ShipmentID] = true
			if r.shipments != nil {
				r.shipments.mu.Lock()
				r.shipments.consumed[*items[i].ShipmentID] = true
				r.shipments.mu.Unlock()
			}
		}
	}
	r.items[invoice.ID] = items
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id uint) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	invoice, ok := r.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return invoice, nil
}

func (r *fakeInvoiceRepo) GetItems(invoiceID uint) ([]models.InvoiceItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[invoiceID], nil
}

func (r *fakeInvoiceRepo) ListByClient(clientID uint) ([]models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matching []models.Invoice
	for _, invoice := range r.invoices {
		if invoice.ClientID == clientID {
			matching = append(matching, *invoice)
		}
	}
	return matching, nil
}

func (r *fakeInvoiceRepo) Update(invoice *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices[invoice.ID] = invoice
	return nil
}

type fakeCODRepo struct {
	mu      sync.Mutex
	records map[uint]*models.CODRecord
}

func newFakeCODRepo(records ...*models.CODRecord) *fakeCODRepo {
	repo := &fakeCODRepo{records: make(map[uint]*models.CODRecord)}
	for _, record := range records {
		repo.records[record.ID] = record
	}
	return repo
}

func (r *fakeCODRepo) CreateRecord(record *models.CODRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = record
	return nil
}

func (r *fakeCODRepo) GetRecordByID(id uint) (*models.CODRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return record, nil
}

func (r *fakeCODRepo) GetRecordByShipment(shipmentID uint) (*models.CODRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range r.records {
		if record.ShipmentID == shipmentID {
			return record, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCODRepo) GetRecordsByIDs(ids []uint) ([]models.CODRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matching []models.CODRecord
	for _, id := range ids {
		if record, ok := r.records[id]; ok {
			matching = append(matching, *record)
		}
	}
	return matching, nil
}

func (r *fakeCODRepo) ListByClientAndStatus(clientID uint, status models.CODRecordStatus) ([]models.CODRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matching []models.CODRecord
	for _, record := range r.records {
		if record.ClientID == clientID && record.Status == status {
			matching = append(matching, *record)
		}
	}
	return matching, nil
}

func (r *fakeCODRepo) UpdateRecord(record *models.CODRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = record
	return nil
}

type fakeDriverRepo struct {
	drivers map[uint]*models.Driver
	routes  map[uint]*models.Route
}

func newFakeDriverRepo(routes ...*models.Route) *fakeDriverRepo {
	repo := &fakeDriverRepo{
		drivers: make(map[uint]*models.Driver),
		routes:  make(map[uint]*models.Route),
	}
	for _, route := range routes {
		repo.routes[route.ID] = route
	}
	return repo
}

func (r *fakeDriverRepo) Create(driver *models.Driver) error {
	r.drivers[driver.ID] = driver
	return nil
}

func (r *fakeDriverRepo) GetByID(id uint) (*models.Driver, error) {
	driver, ok := r.drivers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return driver, nil
}

func (r *fakeDriverRepo) GetAll() ([]models.Driver, error) {
	var all []models.Driver
	for _, driver := range r.drivers {
		all = append(all, *driver)
	}
	return all, nil
}

func (r *fakeDriverRepo) Update(driver *models.Driver) error {
	r.drivers[driver.ID] = driver
	return nil
}

func (r *fakeDriverRepo) Delete(id uint) error {
	delete(r.drivers, id)
	return nil
}

func (r *fakeDriverRepo) CreateRoute(route *models.Route) error {
	r.routes[route.ID] = route
	return nil
}

func (r *fakeDriverRepo) GetRouteByID(id uint) (*models.Route, error) {
	route, ok := r.routes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return route, nil
}

func (r *fakeDriverRepo) GetAllRoutes() ([]models.Route, error) {
	var all []models.Route
	for _, route := range r.routes {
		all = append(all, *route)
	}
	return all, nil
}

func (r *fakeDriverRepo) UpdateRoute(route *models.Route) error {
	r.routes[route.ID] = route
	return nil
}

func (r *fakeDriverRepo) DeleteRoute(id uint) error {
	delete(r.routes, id)
	return nil
}

type fakeRemittanceRepo struct {
	mu          sync.Mutex
	seq         int64
	nextID      uint
	remittances map[uint]*models.CODRemittance
	items       map[uint][]models.CODRemittanceItem
	numbers     map[string]bool
	cod         *fakeCODRepo
}

func newFakeRemittanceRepo(cod *fakeCODRepo) *fakeRemittanceRepo {
	return &fakeRemittanceRepo{
		remittances: make(map[uint]*models.CODRemittance),
		items:       make(map[uint][]models.CODRemittanceItem),
		numbers:     make(map[string]bool),
		cod:         cod,
	}
}

func (r *fakeRemittanceRepo) CreateWithItems(remittance *models.CODRemittance, codRecordIDs []uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cod.mu.Lock()
	defer r.cod.mu.Unlock()

	// Status-guarded claim, all or nothing.
	for _, id := range codRecordIDs {
		record, ok := r.cod.records[id]
		if !ok || record.ClientID != remittance.ClientID ||
			record.Status != models.CODCollected || record.RemittanceID != nil {
			return apperrors.Conflict("one or more COD records are already part of another remittance")
		}
	}

	r.seq++
	remittance.RemittanceNumber = models.FormatRemittanceNumber(time.Now(), r.seq)
	if r.numbers[remittance.RemittanceNumber] {
		return apperrors.Wrap(apperrors.CodeConflict, "duplicate remittance number", gorm.ErrDuplicatedKey)
	}

	r.nextID++
	remittance.ID = r.nextID
	r.numbers[remittance.RemittanceNumber] = true
	r.remittances[remittance.ID] = remittance

	var items []models.CODRemittanceItem
	for _, id := range codRecordIDs {
		record := r.cod.records[id]
		remittanceID := remittance.ID
		record.RemittanceID = &remittanceID
		items = append(items, models.CODRemittanceItem{
			RemittanceID: remittance.ID,
			CODRecordID:  record.ID,
			Amount:       record.CODAmount,
		})
	}
	r.items[remittance.ID] = items
	return nil
}

func (r *fakeRemittanceRepo) GetByID(id uint) (*models.CODRemittance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	remittance, ok := r.remittances[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return remittance, nil
}

func (r *fakeRemittanceRepo) GetItems(remittanceID uint) ([]models.CODRemittanceItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[remittanceID], nil
}

func (r *fakeRemittanceRepo) ListByClient(clientID uint) ([]models.CODRemittance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matching []models.CODRemittance
	for _, remittance := range r.remittances {
		if remittance.ClientID == clientID {
			matching = append(matching, *remittance)
		}
	}
	return matching, nil
}

func (r *fakeRemittanceRepo) AdvanceStatus(remittanceID uint, next models.RemittanceStatus) (*models.CODRemittance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	remittance, ok := r.remittances[remittanceID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !remittance.Status.CanTransitionTo(next) {
		return nil, apperrors.Validation("cannot move remittance from %s to %s", remittance.Status, next)
	}
	remittance.Status = next
	if next == models.RemittanceCompleted {
		now := time.Now()
		remittance.CompletedAt = &now
		r.cod.mu.Lock()
		for _, record := range r.cod.records {
			if record.RemittanceID != nil && *record.RemittanceID == remittanceID {
				record.Status = models.CODRemitted
				record.RemittedToClientDate = &now
			}
		}
		r.cod.mu.Unlock()
	}
	return remittance, nil
}
