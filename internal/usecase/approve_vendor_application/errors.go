package approve_vendor_application

import "errors"

var (
	// ErrApplicationNotFound возвращается, когда заявка не найдена
	ErrApplicationNotFound = errors.New("approve_vendor_application: application not found")

	// ErrAlreadyReviewed возвращается, если заявка уже одобрена или отклонена
	ErrAlreadyReviewed = errors.New("approve_vendor_application: application already reviewed")

	// ErrVendorExists возвращается, если у пользователя уже есть профиль вендора
	ErrVendorExists = errors.New("approve_vendor_application: vendor profile already exists")

	// ErrUserNotFound возвращается, если профиль заявителя удален
	ErrUserNotFound = errors.New("approve_vendor_application: applicant not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_vendor_application: internal error")
)
