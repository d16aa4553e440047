package models

// Contact mirrors the 'res.partner' fields the contact endpoint exposes
type Contact struct {
	ID      int64      `json:"id" xmlrpc:"id"`
	Name    OdooString `json:"name" xmlrpc:"name"`
	Street  OdooString `json:"street" xmlrpc:"street"`
	Street2 OdooString `json:"street2" xmlrpc:"street2"`
	Phone   OdooString `json:"phone" xmlrpc:"phone"`
	Email   OdooString `json:"email" xmlrpc:"email"`
}

// ContactFields is the field set fetched for contact lookups
var ContactFields = []string{"name", "street", "street2", "phone", "email"}

// User mirrors 'res.users'
type User struct {
	ID        int64        `json:"id" xmlrpc:"id"`
	Name      OdooString   `json:"name" xmlrpc:"name"`
	PartnerID OdooRelation `json:"partner_id" xmlrpc:"partner_id"`
}
