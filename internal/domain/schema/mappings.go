package schema

// registry maps collection name -> logical field name -> mapping. Defined at
// build time, immutable at runtime.
//
// Field names stay in French: they mirror the stored documents of the
// booking application (structures, personnes, contacts, lieux, dates,
// artistes).
var registry = map[string]map[string]FieldMapping{
	"structures": {
		"raisonSociale": {Path: "raisonSociale", Type: TypeString},
		"nom":           {Path: "nom", Type: TypeString},
		"nom_ou_raisonSociale": {
			Path:           "nom_ou_raisonSociale",
			Type:           TypeString,
			Virtual:        true,
			VirtualSources: []string{"nom", "raisonSociale"},
		},
		"email":      {Path: "email", Type: TypeString},
		"telephone":  {Path: "telephone", Type: TypeString},
		"mobile":     {Path: "mobile", Type: TypeString},
		"siteWeb":    {Path: "siteWeb", Type: TypeString},
		"type":       {Path: "type", Type: TypeString},
		"siret":      {Path: "siret", Type: TypeString},
		"tva":        {Path: "tva", Type: TypeString},
		"adresse":    {Path: "adresse", Type: TypeString},
		"codePostal": {Path: "codePostal", Type: TypeString},
		"ville":      {Path: "ville", Type: TypeString},
		"departement": {
			Path: "departement", Type: TypeString,
		},
		"region":    {Path: "region", Type: TypeString},
		"pays":      {Path: "pays", Type: TypeString},
		"tags":      {Path: "tags", Type: TypeArray},
		"isClient":  {Path: "isClient", Type: TypeBoolean},
		"isActive":  {Path: "isActive", Type: TypeBoolean},
		"source":    {Path: "source", Type: TypeString},
		"createdAt": {Path: "createdAt", Type: TypeDate},
		"updatedAt": {Path: "updatedAt", Type: TypeDate},
	},
	"personnes": {
		"nom":    {Path: "nom", Type: TypeString},
		"prenom": {Path: "prenom", Type: TypeString},
		// For persons the combined search reads the name fields only.
		"nom_ou_raisonSociale": {
			Path:           "nom_ou_raisonSociale",
			Type:           TypeString,
			Virtual:        true,
			VirtualSources: []string{"nom", "prenom"},
		},
		"civilite":   {Path: "civilite", Type: TypeString},
		"email":      {Path: "email", Type: TypeString},
		"telephone":  {Path: "telephone", Type: TypeString},
		"mobile":     {Path: "mobile", Type: TypeString},
		"adresse":    {Path: "adresse", Type: TypeString},
		"codePostal": {Path: "codePostal", Type: TypeString},
		"ville":      {Path: "ville", Type: TypeString},
		"pays":       {Path: "pays", Type: TypeString},
		"tags":       {Path: "tags", Type: TypeArray},
		"isActive":   {Path: "isActive", Type: TypeBoolean},
		"createdAt":  {Path: "createdAt", Type: TypeDate},
		"updatedAt":  {Path: "updatedAt", Type: TypeDate},
	},
	// Legacy flat contact model, kept for compatibility with existing data.
	"contacts": {
		"nom":       {Path: "nom", Type: TypeString},
		"prenom":    {Path: "prenom", Type: TypeString},
		"prenomNom": {Path: "prenomNom", Type: TypeString},
		"nom_ou_raisonSociale": {
			Path:           "nom_ou_raisonSociale",
			Type:           TypeString,
			Virtual:        true,
			VirtualSources: []string{"nom", "prenom", "structureRaisonSociale"},
		},
		"email":                  {Path: "email", Type: TypeString},
		"telephone":              {Path: "telephone", Type: TypeString},
		"mobile":                 {Path: "mobile", Type: TypeString},
		"fonction":               {Path: "fonction", Type: TypeString},
		"structureRaisonSociale": {Path: "structureRaisonSociale", Type: TypeString},
		"structureType":          {Path: "structureType", Type: TypeString},
		"ville":                  {Path: "ville", Type: TypeString},
		"codePostal":             {Path: "codePostal", Type: TypeString},
		"departement":            {Path: "departement", Type: TypeString},
		"region":                 {Path: "region", Type: TypeString},
		"pays":                   {Path: "pays", Type: TypeString},
		"tags":                   {Path: "tags", Type: TypeArray},
		"client":                 {Path: "client", Type: TypeBoolean},
		"source":                 {Path: "source", Type: TypeString},
		"nomFestival":            {Path: "nomFestival", Type: TypeString},
		"salleNom":               {Path: "salleNom", Type: TypeString},
		"salleVille":             {Path: "salleVille", Type: TypeString},
		"salleJauge1":            {Path: "salleJauge1", Type: TypeNumber},
		"salleJauge2":            {Path: "salleJauge2", Type: TypeNumber},
		"notes":                  {Path: "notes", Type: TypeString},
		"priorite":               {Path: "priorite", Type: TypeString},
		"createdAt":              {Path: "createdAt", Type: TypeDate},
		"updatedAt":              {Path: "updatedAt", Type: TypeDate},
	},
	"lieux": {
		"nom":        {Path: "nom", Type: TypeString},
		"type":       {Path: "type", Type: TypeString},
		"capacite":   {Path: "capacite", Type: TypeNumber},
		"adresse":    {Path: "adresse", Type: TypeString},
		"codePostal": {Path: "codePostal", Type: TypeString},
		"ville":      {Path: "ville", Type: TypeString},
		"pays":       {Path: "pays", Type: TypeString},
		"createdAt":  {Path: "createdAt", Type: TypeDate},
		"updatedAt":  {Path: "updatedAt", Type: TypeDate},
	},
	"dates": {
		"titre":       {Path: "titre", Type: TypeString},
		"date":        {Path: "date", Type: TypeDate},
		"montant":     {Path: "montant", Type: TypeNumber},
		"statut":      {Path: "statut", Type: TypeString},
		"lieuId":      {Path: "lieuId", Type: TypeString},
		"artisteId":   {Path: "artisteId", Type: TypeString},
		"structureId": {Path: "structureId", Type: TypeString},
		"notes":       {Path: "notes", Type: TypeString},
		"createdAt":   {Path: "createdAt", Type: TypeDate},
		"updatedAt":   {Path: "updatedAt", Type: TypeDate},
		// Denormalized from the related lieu/artiste at write time.
		"lieuNom":    {Path: "lieu.nom", Type: TypeString, Joined: true},
		"lieuVille":  {Path: "lieu.ville", Type: TypeString, Joined: true},
		"artisteNom": {Path: "artiste.nom", Type: TypeString, Joined: true},
	},
	"artistes": {
		"nom":       {Path: "nom", Type: TypeString},
		"genre":     {Path: "genre", Type: TypeString},
		"contact":   {Path: "contact", Type: TypeString},
		"tags":      {Path: "tags", Type: TypeArray},
		"createdAt": {Path: "createdAt", Type: TypeDate},
		"updatedAt": {Path: "updatedAt", Type: TypeDate},
	},
	// Saved searches and selections share one collection, discriminated by
	// the type field.
	"selections": {
		"entrepriseId": {Path: "entrepriseId", Type: TypeString},
		"userId":       {Path: "userId", Type: TypeString},
		"type":         {Path: "type", Type: TypeString},
		"nom":          {Path: "nom", Type: TypeString},
		"shared":       {Path: "shared", Type: TypeBoolean},
		"createdAt":    {Path: "createdAt", Type: TypeDate},
		"updatedAt":    {Path: "updatedAt", Type: TypeDate},
	},
}
